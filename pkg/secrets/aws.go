package secrets

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

var (
	awsMu   sync.Mutex
	awsCfgs = map[string]aws.Config{}
)

// GetAWSConfig carrega a configuração da AWS (env vars, profile, IAM role) uma vez por região.
func GetAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	awsMu.Lock()
	defer awsMu.Unlock()

	if cfg, ok := awsCfgs[region]; ok {
		return cfg, nil
	}

	opts := []func(*config.LoadOptions) error{}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, err
	}
	awsCfgs[region] = cfg
	return cfg, nil
}
