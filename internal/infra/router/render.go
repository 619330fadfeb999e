package router

import (
	"fmt"
	"html/template"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"github.com/anzhiyu-c/anheyu-posts/assets"
)

// CustomHTMLRender 使用预先解析好的内嵌模板渲染页面
type CustomHTMLRender struct{ Templates *template.Template }

func (r CustomHTMLRender) Instance(name string, data interface{}) render.Render {
	return render.HTML{Template: r.Templates, Name: name, Data: data}
}

// SetupTemplates 解析内嵌模板并注册到引擎
func SetupTemplates(engine *gin.Engine) error {
	templates, err := assets.LoadTemplates()
	if err != nil {
		return fmt.Errorf("解析页面模板失败: %w", err)
	}
	engine.HTMLRender = CustomHTMLRender{Templates: templates}
	log.Printf("[Router] 已加载页面模板: %s", templates.DefinedTemplates())
	return nil
}
