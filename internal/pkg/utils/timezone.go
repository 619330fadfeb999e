/*
 * @Description: 时区工具 - 统一使用 UTC+8 时区
 * @Author: 安知鱼
 * @Date: 2026-01-15 10:00:00
 * @LastEditTime: 2026-10-12 09:41:52
 * @LastEditors: 安知鱼
 */
package utils

import "time"

// ChinaTimezone 中国标准时间 UTC+8
var ChinaTimezone = time.FixedZone("CST", 8*60*60)

// ToChina 将时间转换为中国时区
func ToChina(t time.Time) time.Time {
	return t.In(ChinaTimezone)
}

// FormatDateInChina 按中国时区输出日期，用于页面展示
func FormatDateInChina(t time.Time) string {
	return ToChina(t).Format("2006-01-02")
}
