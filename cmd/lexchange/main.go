package main

import (
	"flag"
	"lexchange/conf"
	"lexchange/pkg/logger"
	"log"
)

// 启动API服务

func main() {
	configPath := flag.String("c", "conf/config.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置文件
	if err := conf.LoadConfig(*configPath); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(conf.AppConfig.Log)
	defer logger.Sync()

	app, err := InitApp(&conf.AppConfig)
	if err != nil {
		logger.Fatalf("初始化失败: %v", err)
	}

	server := NewServer(&conf.AppConfig)
	server.RegisterOnShutdown(app.Shutdown)
	server.Run(app.Router)
}
