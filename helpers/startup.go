package helpers

import (
	"context"
	"os"

	"github.com/voxscribe/voxscribe-server/pkg/config"
	"github.com/voxscribe/voxscribe-server/pkg/factory"
	"gopkg.in/yaml.v3"
)

func PrepareServer(ctx context.Context, appCnf *config.AppConfig) error {
	if err := factory.NewDatabaseConnection(ctx, appCnf); err != nil {
		return err
	}

	return factory.NewRedisConnection(ctx, appCnf)
}

func ReadYamlConfigFile(filename string) (*config.AppConfig, error) {
	yamlFile, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	appCnf := new(config.AppConfig)
	err = yaml.Unmarshal(yamlFile, &appCnf)
	if err != nil {
		return nil, err
	}

	// get current working dir
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	appCnf.RootWorkingDir = wd

	return appCnf, nil
}
