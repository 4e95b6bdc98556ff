package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/viper"

	"github.com/x-xyz/checkout/base/backoff"
	"github.com/x-xyz/checkout/base/config"
	bCtx "github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/base/database/mongoclient"
	"github.com/x-xyz/checkout/base/database/redisclient"
	"github.com/x-xyz/checkout/base/log"
	"github.com/x-xyz/checkout/base/metrics"
	"github.com/x-xyz/checkout/base/pricing"
	"github.com/x-xyz/checkout/domain/purchase"
	"github.com/x-xyz/checkout/service/bus"
	"github.com/x-xyz/checkout/service/notifier"
	"github.com/x-xyz/checkout/service/query"
	"github.com/x-xyz/checkout/service/redis"
	"github.com/x-xyz/checkout/service/verifier"
	collection_repository "github.com/x-xyz/checkout/stores/collection/repository"
	paytoken_repository "github.com/x-xyz/checkout/stores/paytoken/repository"
	purchase_repository "github.com/x-xyz/checkout/stores/purchase/repository"
	"github.com/x-xyz/checkout/stores/purchase/sweeper"
	purchase_usecase "github.com/x-xyz/checkout/stores/purchase/usecase"
	token_repository "github.com/x-xyz/checkout/stores/token/repository"
)

const confirmDurable = "checkout-confirm"

func init() {
	if err := config.Load(`infra/configs/config.yaml`); err != nil {
		panic(err)
	}
}

func main() {
	ctx, cancel := bCtx.WithCancel(bCtx.Background())
	defer cancel()

	q := initMongo()
	redisCache := initRedis(ctx)

	eventBus, err := bus.New(viper.GetString("nats.url"))
	if err != nil {
		ctx.WithField("err", err).Panic("bus.New failed")
	}
	defer eventBus.Close()
	if err := eventBus.EnsureStream(ctx, bus.PurchaseStream, bus.PurchaseStreamMaxAge, bus.SubjectPurchaseAll); err != nil {
		ctx.WithField("err", err).Panic("eventBus.EnsureStream failed")
	}

	publishers := purchase.Publishers{bus.NewEventPublisher(eventBus)}
	if botKey := viper.GetString("discord.botKey"); len(botKey) > 0 {
		discord, err := notifier.NewDiscord(notifier.DiscordCfg{
			BotKey:    botKey,
			ChannelId: viper.GetString("discord.channelId"),
			AssetUrl:  viper.GetString("discord.assetUrl"),
		})
		if err != nil {
			ctx.WithField("err", err).Panic("notifier.NewDiscord failed")
		}
		defer discord.Close()
		publishers = append(publishers, discord)
	}

	paytokenRepo := paytoken_repository.NewPayTokenRepo(q)
	// expiry is left to the sweeper, so no in-process timers
	purchaseUC := purchase_usecase.New(&purchase_usecase.PurchaseUseCaseCfg{
		Repo:           purchase_repository.New(q),
		NftitemRepo:    token_repository.NewNftItem(q, redisCache),
		CollectionRepo: collection_repository.NewCached(collection_repository.New(q), redisCache),
		PaytokenRepo:   paytokenRepo,
		Pricing: pricing.NewCalculator(&pricing.CalculatorCfg{
			Paytoken: paytokenRepo,
			FeeBps:   viper.GetInt64("purchase.feeBps"),
		}),
		Verifier: verifier.NewClient(&verifier.ClientCfg{
			HttpClient: http.Client{},
			Timeout:    viper.GetDuration("verifier.timeout"),
			Endpoint:   viper.GetString("verifier.endpoint"),
			ApiKey:     viper.GetString("verifier.apiKey"),
		}),
		Publisher: publishers,
		Window:    viper.GetDuration("purchase.window"),
	})
	defer purchaseUC.Close()

	sub, err := eventBus.Subscribe(ctx, bus.SubjectVerificationConfirmed, confirmDurable, bus.ConfirmHandler(purchaseUC))
	if err != nil {
		ctx.WithField("err", err).Panic("eventBus.Subscribe failed")
	}
	defer sub.Close()

	sw := sweeper.New(&sweeper.SweeperCfg{
		Purchase: purchaseUC,
		Redis:    redisCache,
		Backoff: backoff.NewExponential(
			viper.GetDuration("worker.backoffStart"),
			viper.GetDuration("worker.backoffLimit"),
		),
		Interval: viper.GetDuration("worker.sweepInterval"),
		Batch:    viper.GetInt("worker.sweepBatch"),
	})
	sw.Start(ctx)
	ctx.Info("worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	cancel()
	sw.Wait()
	log.Log().Info("worker stopped")
}

func initMongo() query.Mongo {
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	return query.New(mongoClient, checkIndex)
}

func initRedis(ctx bCtx.Ctx) redis.Service {
	ctx.Info("init redis cache")
	name := viper.GetString("redis_cache.name")
	pool := redisclient.MustConnectRedis(
		viper.GetString("redis_cache.uri"),
		viper.GetString("redis_cache.password"),
		redisclient.RedisParam{
			PoolMultiplier: viper.GetFloat64("redis_cache.poolMultiplier"),
			Retry:          true,
		},
	)
	return redis.New(name, metrics.New(name), pool)
}
