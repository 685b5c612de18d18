package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"wxpay-gateway-api/internal/callback"
	"wxpay-gateway-api/internal/config"
	"wxpay-gateway-api/internal/dal"
	"wxpay-gateway-api/internal/dao"
	"wxpay-gateway-api/internal/handler"
	"wxpay-gateway-api/internal/idgen"
	"wxpay-gateway-api/internal/logger"
	"wxpay-gateway-api/internal/middleware"
	"wxpay-gateway-api/internal/service"
	"wxpay-gateway-api/internal/wxpay"
)

func main() {
	// load config env
	config.Init()

	// init infra
	dal.InitMainDB()
	dal.InitRedis()
	dal.InitRabbitMQ()

	// idgen：多实例部署用 SNOWFLAKE_NODE_ID 区分节点
	if os.Getenv("SNOWFLAKE_NODE_ID") != "" {
		idgen.InitFromEnv()
	} else {
		idgen.Init(1)
	}

	appLog := logger.NewLogger("app")

	// 网关客户端
	wc := config.C.Wxpay
	client, err := wxpay.NewClient(wxpay.Config{
		AppID:      wc.AppID,
		MchID:      wc.MchID,
		APIKey:     wc.APIKey,
		SignType:   wxpay.SignType(wc.SignType),
		GatewayURL: wc.GatewayURL,
		NotifyURL:  wc.NotifyURL,
		CertFile:   wc.CertFile,
		KeyFile:    wc.KeyFile,
	}, wc.Timeout)
	if err != nil {
		log.Fatalf("init wxpay client failed: %v", err)
	}

	orderDao := dao.NewOrderDao()
	paySvc := service.NewPayService(client, orderDao, appLog)

	// 通知幂等存储
	var store callback.NotificationStore
	switch config.C.Notify.Store {
	case "redis":
		store = callback.NewRedisStore(dal.RedisClient)
	case "mysql":
		store = callback.NewGormStore(dal.MainDB)
	default:
		store = callback.NewMemoryStore()
	}
	proc := callback.NewProcessor(wc.APIKey, wxpay.SignType(wc.SignType), store, paySvc.OnConfirmed, appLog)

	// 对账补单，确认路径与回调共用幂等存储
	if config.C.Reconcile.Enabled {
		rec := service.NewReconcileService(client, orderDao, proc, appLog)
		go rec.Run(context.Background())
	}

	// http server
	if config.C.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recover(), middleware.RequestLogger())

	ph := handler.NewPayHandler(paySvc)
	nh := handler.NewNotifyHandler(proc)

	v1 := r.Group("/api/v1/wxpay")
	{
		v1.POST("/unifiedorder", middleware.AuthHMAC(), ph.Create)
		v1.GET("/order_query", ph.Query)
		v1.POST("/refund", middleware.AuthHMAC(), ph.Refund)
		v1.GET("/refundquery", ph.RefundQuery)
		v1.GET("/downloadbill", ph.DownloadBill)
		v1.GET("/app_pay_params", ph.AppPayParams)
		v1.GET("/jsapi_pay_params", ph.JSAPIPayParams)
		v1.POST("/pay_result_callback", nh.PayResultCallback)
	}

	addr := ":" + config.C.Server.Port
	log.Printf("listening %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
