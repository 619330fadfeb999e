package assets

import (
	"embed"
	"encoding/json"
	"html/template"
	"log"
)

//go:embed templates/*.html
var TemplatesFS embed.FS

// FuncMap 页面模板可用的函数
var FuncMap = template.FuncMap{
	// json 把任意值序列化后原样嵌入 <script type="application/json">
	"json": func(v interface{}) template.JS {
		b, err := json.Marshal(v)
		if err != nil {
			log.Printf("[Templates] 序列化 JSON 失败: %v", err)
			return template.JS("null")
		}
		return template.JS(b)
	},
}

// LoadTemplates 解析内嵌的全部页面模板
func LoadTemplates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap).ParseFS(TemplatesFS, "templates/*.html")
}
