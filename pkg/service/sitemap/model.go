/*
 * @Description: 站点地图条目
 * @Author: 安知鱼
 * @Date: 2025-09-21 00:00:00
 * @LastEditTime: 2026-10-17 11:26:03
 * @LastEditors: 安知鱼
 */
package sitemap

import (
	"time"

	smap "github.com/snabb/sitemap"
)

// Item 站点地图条目，LastModified 为零值时不输出 lastmod
type Item struct {
	URL          string
	LastModified time.Time
	ChangeFreq   smap.ChangeFreq
	Priority     float32
}

func (i Item) toURL() *smap.URL {
	u := &smap.URL{
		Loc:        i.URL,
		ChangeFreq: i.ChangeFreq,
		Priority:   i.Priority,
	}
	if !i.LastModified.IsZero() {
		lastMod := i.LastModified.UTC()
		u.LastMod = &lastMod
	}
	return u
}
