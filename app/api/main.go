package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/x-xyz/checkout/base/config"
	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/base/database/mongoclient"
	"github.com/x-xyz/checkout/base/database/redisclient"
	"github.com/x-xyz/checkout/base/log"
	"github.com/x-xyz/checkout/base/metrics"
	"github.com/x-xyz/checkout/base/pricing"
	bValidator "github.com/x-xyz/checkout/base/validator"
	"github.com/x-xyz/checkout/domain"
	"github.com/x-xyz/checkout/domain/purchase"
	mmiddleware "github.com/x-xyz/checkout/middleware"
	"github.com/x-xyz/checkout/service/bus"
	"github.com/x-xyz/checkout/service/notifier"
	"github.com/x-xyz/checkout/service/query"
	"github.com/x-xyz/checkout/service/redis"
	"github.com/x-xyz/checkout/service/verifier"
	account_delivery "github.com/x-xyz/checkout/stores/account/delivery/http"
	account_repository "github.com/x-xyz/checkout/stores/account/repository"
	account_usecase "github.com/x-xyz/checkout/stores/account/usecase"
	auth_delivery "github.com/x-xyz/checkout/stores/auth/delivery/http"
	auth_middleware "github.com/x-xyz/checkout/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/x-xyz/checkout/stores/auth/usecase"
	collection_repository "github.com/x-xyz/checkout/stores/collection/repository"
	hc_delivery "github.com/x-xyz/checkout/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/checkout/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/checkout/stores/healthcheck/usecase"
	paytoken_repository "github.com/x-xyz/checkout/stores/paytoken/repository"
	purchase_delivery "github.com/x-xyz/checkout/stores/purchase/delivery/http"
	purchase_repository "github.com/x-xyz/checkout/stores/purchase/repository"
	purchase_usecase "github.com/x-xyz/checkout/stores/purchase/usecase"
	token_repository "github.com/x-xyz/checkout/stores/token/repository"

	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/x-xyz/checkout/app/api/docs"
)

func init() {
	if err := config.Load(`infra/configs/config.yaml`); err != nil {
		panic(err)
	}
}

//	@title			X Checkout API
//	@version		1.0
//	@description	Purchase sessions of the X marketplace.

// main
//
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description				token from the identity provider, apply with `bearer {token}`
func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.AddContext())
	e.Use(middL.ResponseLogger())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(bValidator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	if err := purchase_repository.EnsureIndexes(context, q); err != nil {
		context.WithField("err", err).Panic("purchase_repository.EnsureIndexes failed")
	}
	if err := q.EnsureIndexes(context, domain.TableAccounts, account_repository.Indexes()); err != nil {
		context.WithField("err", err).Panic("account indexes failed")
	}

	// init Redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), redisCachePool)

	// events
	publishers := purchase.Publishers{}
	natsUrl := viper.GetString("nats.url")
	eventBus, err := bus.New(natsUrl)
	if err != nil {
		context.WithFields(log.Fields{"err": err, "url": natsUrl}).Panic("bus.New failed")
	}
	defer eventBus.Close()
	if err := eventBus.EnsureStream(context, bus.PurchaseStream, bus.PurchaseStreamMaxAge, bus.SubjectPurchaseAll); err != nil {
		context.WithField("err", err).Panic("eventBus.EnsureStream failed")
	}
	publishers = append(publishers, bus.NewEventPublisher(eventBus))

	if botKey := viper.GetString("discord.botKey"); len(botKey) > 0 {
		discord, err := notifier.NewDiscord(notifier.DiscordCfg{
			BotKey:    botKey,
			ChannelId: viper.GetString("discord.channelId"),
			AssetUrl:  viper.GetString("discord.assetUrl"),
		})
		if err != nil {
			context.WithField("err", err).Panic("notifier.NewDiscord failed")
		}
		defer discord.Close()
		publishers = append(publishers, discord)
	}

	verifierClient := verifier.NewClient(&verifier.ClientCfg{
		HttpClient: http.Client{},
		Timeout:    viper.GetDuration("verifier.timeout"),
		Endpoint:   viper.GetString("verifier.endpoint"),
		ApiKey:     viper.GetString("verifier.apiKey"),
	})

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(q, redisCache)
	nftitemRepo := token_repository.NewNftItem(q, redisCache)
	collectionRepo := collection_repository.NewCached(collection_repository.New(q), redisCache)
	accountRepo := account_repository.New(q, redisCache)
	paytokenRepo := paytoken_repository.NewPayTokenRepo(q)
	purchaseRepo := purchase_repository.New(q)

	hc := hc_usecase.New(hcRepo)
	account := account_usecase.New(&account_usecase.AccountUseCaseCfg{
		Repo:           accountRepo,
		DepositAddress: domain.Address(viper.GetString("purchase.depositAddress")),
	})
	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"), account)
	purchaseUC := purchase_usecase.New(&purchase_usecase.PurchaseUseCaseCfg{
		Repo:           purchaseRepo,
		NftitemRepo:    nftitemRepo,
		CollectionRepo: collectionRepo,
		PaytokenRepo:   paytokenRepo,
		Pricing: pricing.NewCalculator(&pricing.CalculatorCfg{
			Paytoken: paytokenRepo,
			FeeBps:   viper.GetInt64("purchase.feeBps"),
		}),
		Verifier:   verifierClient,
		Publisher:  publishers,
		Window:     viper.GetDuration("purchase.window"),
		ExpiryTick: viper.GetDuration("purchase.tick"),
	})
	defer purchaseUC.Close()

	auth_middleware := auth_middleware.New(auth, viper.GetString("auth.loginUrl"))

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth, viper.GetBool("auth.devSign"))
	account_delivery.New(e, account, auth_middleware)
	purchase_delivery.New(e, purchaseUC, account, auth_middleware, viper.GetString("purchase.webhookSecret"))

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
