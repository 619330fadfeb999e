package constant

// 缓存键前缀
const (
	// CacheKeyPrefixCMS 内容源响应缓存前缀
	CacheKeyPrefixCMS = "cms:"
	// CacheKeyPosts 文章连接缓存键前缀，后接标签名或 _all
	CacheKeyPosts = CacheKeyPrefixCMS + "posts:"
	// CacheKeyThemes 主题连接缓存键
	CacheKeyThemes = CacheKeyPrefixCMS + "themes"
	// CacheKeyPrefixRSS RSS 缓存前缀
	CacheKeyPrefixRSS = "rss:feed:"
	// CacheKeyCMSGeneration 内容缓存代数，每次失效加一；不在 cms: 前缀下，避免被失效操作一并删除
	CacheKeyCMSGeneration = "cache:generation:cms"
	// CacheAllTagsMarker 无标签筛选时的缓存键后缀
	CacheAllTagsMarker = "_all"
)
