package main

import (
	"context"
	"log"

	"whome/internal/config"
	"whome/internal/pkg"
	"whome/internal/repository/mysql"
	"whome/internal/repository/redis"
	"whome/internal/router"
	"whome/internal/service"
)

func main() {
	cfg := config.Load()
	pkg.SetSecrets(cfg.JWTAccessSecret, cfg.JWTRefreshSecret)

	if err := mysql.InitDB(cfg.MySQLDSN); err != nil {
		log.Fatalf("mysql init: %v", err)
	}
	if err := mysql.AutoMigrate(mysql.DB); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		log.Fatalf("redis init: %v", err)
	}
	defer redis.Close()

	// 事件投递：配了 broker 走 Kafka，否则只打日志
	sender := service.LogSender
	if brokers := cfg.BrokerList(); len(brokers) > 0 {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{Brokers: brokers, Topic: cfg.KafkaTopic})
		if err != nil {
			log.Fatalf("kafka init: %v", err)
		}
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go service.NewOutboxRelayer(mysql.DB, sender).Run(ctx)

	r := router.InitRouter(cfg)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
