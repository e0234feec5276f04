package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// LoadSSM overlays parameters from AWS SSM Parameter Store onto the config
// map. Parameters are read recursively under prefix; the key is the last
// path segment uppercased, so /portfolio/prod/resend_api_key becomes
// RESEND_API_KEY. Values from SSM win over values already in the map.
//
// Returns the map unchanged when prefix is empty, so local development
// without AWS credentials keeps working on plain environment variables.
func LoadSSM(ctx context.Context, cfg map[string]string, prefix string) (map[string]string, error) {
	if prefix == "" {
		return cfg, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return cfg, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := ssm.NewFromConfig(awsCfg)

	var nextToken *string
	loaded := 0
	for {
		out, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
			Path:           aws.String(prefix),
			Recursive:      aws.Bool(true),
			WithDecryption: aws.Bool(true),
			NextToken:      nextToken,
		})
		if err != nil {
			return cfg, fmt.Errorf("failed to read SSM parameters under %s: %w", prefix, err)
		}

		for _, param := range out.Parameters {
			if param.Name == nil || param.Value == nil {
				continue
			}
			segments := strings.Split(*param.Name, "/")
			key := strings.ToUpper(segments[len(segments)-1])
			cfg[key] = *param.Value
			// Exported too, so later config.New() snapshots see them
			os.Setenv(key, *param.Value)
			loaded++
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	log.Info().Int("parameters", loaded).Str("prefix", prefix).Msg("Loaded configuration from SSM")
	return cfg, nil
}
