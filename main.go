/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-06-28 00:21:55
 * @LastEditTime: 2026-09-12 12:19:06
 * @LastEditors: 安知鱼
 */
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/anzhiyu-c/anheyu-posts/cmd/server"
	"github.com/anzhiyu-c/anheyu-posts/internal/pkg/version"
)

// @title           Anheyu Posts API
// @version         1.0
// @description     Anheyu Posts 文章列表页与订阅源接口文档
// @termsOfService  http://swagger.io/terms/

// @contact.name   安知鱼
// @contact.url    https://github.com/anzhiyu-c/anheyu-posts
// @contact.email  support@anheyu.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8091
// @BasePath  /api

// @securityDefinitions.apikey WebhookAuth
// @in header
// @name Authorization
// @description 内容源回调签名令牌，格式为: Bearer {token}
func main() {
	// 解析命令行参数
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "输出版本号后退出")
	flag.Parse()

	if showVersion {
		fmt.Println(version.GetVersionString())
		return
	}

	// 调用位于 cmd/server 包中的 NewApp 函数来构建整个应用
	app, cleanup, err := server.NewApp()
	if err != nil {
		if cleanup != nil {
			cleanup()
		}
		log.Fatalf("应用初始化失败: %v", err)
	}

	// 使用 defer 来确保 cleanup 函数在 main 退出时被调用
	defer cleanup()

	// 确保后台任务在程序退出时被停止
	defer app.Stop()

	app.PrintBanner()

	// 启动应用
	if err := app.Run(); err != nil {
		log.Fatalf("应用运行失败: %v", err)
	}
}
