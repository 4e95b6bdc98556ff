package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/checkout/base/log"
)

// secrets are only read from the environment when missing in the config file
var secrets = []string{
	"mongo.uri",
	"redis_cache.password",
	"auth.jwtSecret",
	"purchase.webhookSecret",
	"verifier.apiKey",
	"discord.botKey",
	"nats.url",
}

// Load reads .env, then the yaml file given by --config (defaultPath when unset).
// Environment variables override the file, `auth.jwtSecret` maps to AUTH_JWTSECRET.
func Load(defaultPath string) error {
	if err := godotenv.Load(); err != nil {
		log.Log().Info("no .env file found, using system environment")
	}

	flags := pflag.NewFlagSet("checkout", pflag.ContinueOnError)
	path := flags.String("config", defaultPath, "path of the yaml config file")
	if err := flags.Parse(osArgs()); err != nil {
		return err
	}
	return LoadFile(*path)
}

func LoadFile(path string) error {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	for _, key := range secrets {
		if err := viper.BindEnv(key); err != nil {
			return err
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		return err
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
	return nil
}
