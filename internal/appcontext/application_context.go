package appcontext

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/config"
	"github.com/RoyceAzure/lab/storefront/internal/infra/gateway"
	"github.com/RoyceAzure/lab/storefront/internal/infra/producer"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const productCacheTTL = 10 * time.Minute

type ApplicationContext struct {
	Cf              *config.Config
	DbConn          *gorm.DB
	DbDao           db.Store
	RedisClient     *redis.Client
	ProductCache    redis_repo.IProductCacheRepository
	EventProducer   producer.IOrderEventProducer
	PaymentGateway  gateway.IPaymentGateway
	CatalogService  service.ICatalogService
	CartService     service.ICartService
	CouponService   service.ICouponService
	OrderService    service.IOrderService
	CheckoutService service.ICheckoutService
	RefundService   service.IRefundService
	AdminService    service.IAdminService
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}
	err := app.Init()
	if err != nil {
		return nil, err
	}

	return &app, nil
}

func (app *ApplicationContext) Init() error {
	err := app.setUpDbConn()
	if err != nil {
		return err
	}
	err = app.setUpDbDao()
	if err != nil {
		return err
	}
	err = app.setUpRedis()
	if err != nil {
		return err
	}
	err = app.setUpEventProducer()
	if err != nil {
		return err
	}
	err = app.setUpPaymentGateway()
	if err != nil {
		return err
	}
	err = app.setUpServices()
	if err != nil {
		return err
	}

	log.Printf("migrating database schema...")
	if err := app.DbDao.InitMigrate(); err != nil {
		return err
	}
	log.Printf("database schema migrated")

	return nil
}

func (app *ApplicationContext) setUpDbConn() error {
	log.Printf("Start setup database connection")
	conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return err
	}
	app.DbConn = conn
	log.Printf("Finish setup database connection")
	return nil
}

func (app *ApplicationContext) setUpDbDao() error {
	log.Printf("Start setup database DAO")
	app.DbDao = db.NewStore(app.DbConn)
	log.Printf("Finish setup database DAO")
	return nil
}

func (app *ApplicationContext) setUpRedis() error {
	log.Printf("Start setup redis")
	app.RedisClient = redis.NewClient(&redis.Options{
		Addr:     app.Cf.RedisAddr,
		Password: app.Cf.RedisPas,
	})
	if err := app.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}
	app.ProductCache = redis_repo.NewProductCacheRepo(app.RedisClient, productCacheTTL)
	log.Printf("Finish setup redis")
	return nil
}

func (app *ApplicationContext) setUpEventProducer() error {
	log.Printf("Start setup event producer")
	brokers := strings.Split(app.Cf.KafkaBrokers, ",")
	app.EventProducer = producer.NewOrderEventProducer(brokers, app.Cf.KafkaTopic)
	log.Printf("Finish setup event producer")
	return nil
}

func (app *ApplicationContext) setUpPaymentGateway() error {
	log.Printf("Start setup payment gateway client")
	app.PaymentGateway = gateway.NewClient(app.Cf.GatewayURL, app.Cf.GatewayKeyID, app.Cf.GatewaySec)
	log.Printf("Finish setup payment gateway client")
	return nil
}

func (app *ApplicationContext) setUpServices() error {
	log.Printf("Start setup services")
	app.CatalogService = service.NewCatalogService(app.DbDao, app.ProductCache)
	app.CartService = service.NewCartService(app.DbDao)
	app.CouponService = service.NewCouponService(app.DbDao)
	app.OrderService = service.NewOrderService(app.DbDao)
	app.CheckoutService = service.NewCheckoutService(app.DbDao, app.PaymentGateway, app.EventProducer, app.Cf.Currency)
	app.RefundService = service.NewRefundService(app.DbDao, app.EventProducer)
	app.AdminService = service.NewAdminService(app.DbDao, app.ProductCache)
	log.Printf("Finish setup services")
	return nil
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	log.Printf("Start application shutdown")

	done := make(chan error)
	go func() {
		defer close(done)

		if app.EventProducer != nil {
			log.Printf("Closing event producer...")
			if err := app.EventProducer.Close(); err != nil {
				//有錯誤不結束流程
				log.Printf("event producer close error: %v", err)
			}
		}

		if app.RedisClient != nil {
			log.Printf("Closing redis connection...")
			if err := app.RedisClient.Close(); err != nil {
				log.Printf("redis close error: %v", err)
			}
		}

		// 關閉 DB
		if app.DbConn != nil {
			log.Printf("Closing database connection...")
			if sqlDB, err := app.DbConn.DB(); err == nil {
				sqlDB.Close()
			}
		}

		log.Printf("Application shutdown complete")
		done <- nil
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %v", ctx.Err())
	}
}
