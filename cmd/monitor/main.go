package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charlesren/action_word_monitor/aggregator"
	"github.com/charlesren/action_word_monitor/chart"
	"github.com/charlesren/action_word_monitor/consumer"
	"github.com/charlesren/action_word_monitor/manager"
	"github.com/charlesren/action_word_monitor/render"
	"github.com/charlesren/userconfig"
	"github.com/charlesren/ylog"
	"github.com/spf13/viper"
)

var (
	UserConfig *viper.Viper
	ConfPath   string
)

func init() {
	confPath := flag.String("c", "../conf/monitor.yml", "ConfigPath")
	flag.Parse()
	ConfPath = *confPath

	initConfig()
}

func initConfig() {
	var err error
	if UserConfig, err = userconfig.NewUserConfig(userconfig.WithPath(ConfPath)); err != nil {
		fmt.Printf("####LOAD_CONFIG_ERROR: %v", err)
		os.Exit(-1)
	}
	UserConfig.SetDefault("kafka.topic", "buzzline-topic")
	UserConfig.SetDefault("kafka.server", "localhost:9092")
	UserConfig.SetDefault("kafka.group_id", "action-consumer-group")
	UserConfig.SetDefault("consumer.batch_size", 1)
	UserConfig.SetDefault("chart.interval_ms", 2000)
	UserConfig.SetDefault("chart.title", "Real-Time Action Word Frequency")
	initLog()
}

func initLog() {
	logLevel := UserConfig.GetInt("server.log.applog.loglevel")
	logPath := "../logs/action_monitor.log"
	logger := ylog.NewYLog(
		ylog.WithLogFile(logPath),
		ylog.WithMaxAge(3),
		ylog.WithMaxSize(100),
		ylog.WithMaxBackups(3),
		ylog.WithLevel(logLevel),
	)
	ylog.InitLogger(logger)
}

// kafkaConfig 组装消费配置，环境变量优先于配置文件
func kafkaConfig() consumer.Config {
	topic := UserConfig.GetString("kafka.topic")
	if env := os.Getenv("PROJECT_TOPIC"); env != "" {
		topic = env
	}
	server := UserConfig.GetString("kafka.server")
	if env := os.Getenv("KAFKA_SERVER"); env != "" {
		server = env
	}
	return consumer.Config{
		Server:  server,
		Topic:   topic,
		GroupID: UserConfig.GetString("kafka.group_id"),
	}
}

func main() {
	ylog.Infof("Main", "START consumer, config file: %s", ConfPath)

	cfg := kafkaConfig()
	ylog.Infof("Main", "using kafka server: %s", cfg.Server)
	ylog.Infof("Main", "using topic: %s", cfg.Topic)
	ylog.Infof("Main", "using group id: %s", cfg.GroupID)

	source, err := consumer.NewKafkaSource(context.Background(), cfg)
	if err != nil {
		ylog.Errorf("Main", "kafka consumer is not available, exiting: %v", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := source.Close(); cerr != nil {
			ylog.Errorf("Main", "failed to close kafka consumer: %v", cerr)
		}
	}()

	actions := aggregator.Vocabulary(UserConfig.GetStringSlice("chart.actions"))
	if len(actions) == 0 {
		actions = chart.DefaultActions
	}
	agg := aggregator.New(actions)
	ylog.Infof("Main", "tracking action words: %v", agg.Vocabulary())

	producer := chart.NewProducer(source, agg, UserConfig.GetInt("consumer.batch_size"))
	producer.AddHandler(&chart.LogHandler{})
	producer.AddHandler(render.NewTerminalRenderer(UserConfig.GetString("chart.title")))

	interval := time.Duration(UserConfig.GetInt("chart.interval_ms")) * time.Millisecond
	mgr := manager.NewManager(producer, interval)
	mgr.Start()
	defer mgr.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	ylog.Warnf("Main", "consumer interrupted by user, shutting down...")

	stats := producer.Stats()
	ylog.Infof("Main", "final stats: ticks=%d messages=%d empty_ticks=%d fetch_errors=%d",
		stats.Ticks, stats.Messages, stats.EmptyTicks, stats.FetchErrors)
}
