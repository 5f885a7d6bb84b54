package registry

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	ecrTypes "github.com/aws/aws-sdk-go-v2/service/ecr/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/kevinfinalboss/corsair/internal/logger"
	"github.com/kevinfinalboss/corsair/pkg/types"
	"github.com/kevinfinalboss/corsair/pkg/utils"
)

type ECRRegistry struct {
	*BaseRegistry
	Regions   []string
	AccountID string
	Profiles  []string
	AccessKey string
	SecretKey string
	awsConfig aws.Config
	clients   map[string]*ecr.Client
	crane     *CraneClient
}

func NewECRRegistry(config *types.RegistryConfig, settings *types.SettingsConfig, logger *logger.Logger) (*ECRRegistry, error) {
	if len(config.Regions) == 0 {
		return nil, fmt.Errorf("registry ECR requer ao menos uma região")
	}

	registry := &ECRRegistry{
		BaseRegistry: &BaseRegistry{
			Kind:   types.KindECR,
			Logger: logger,
		},
		Regions:   config.Regions,
		AccountID: config.AccountID,
		Profiles:  config.Profiles,
		AccessKey: config.AccessKey,
		SecretKey: config.SecretKey,
		crane:     NewCraneClient(settings.Platform, logger),
	}

	if err := registry.initAWSConfig(context.Background()); err != nil {
		return nil, fmt.Errorf("falha ao inicializar configuração AWS: %w", err)
	}

	return registry, nil
}

func (r *ECRRegistry) initAWSConfig(ctx context.Context) error {
	var cfg aws.Config
	var err error

	baseRegion := r.Regions[0]

	if r.AccessKey != "" && r.SecretKey != "" {
		r.Logger.Debug("ecr_using_credentials").
			Str("access_key", utils.MaskSecret(r.AccessKey)).
			Send()
		cfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(baseRegion),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				r.AccessKey,
				r.SecretKey,
				"",
			)),
		)
	} else if len(r.Profiles) > 0 {
		r.Logger.Debug("ecr_using_profiles").
			Strs("profiles", r.Profiles).
			Send()

		for i, profile := range r.Profiles {
			r.Logger.Debug("ecr_trying_profile").
				Str("profile", profile).
				Int("attempt", i+1).
				Send()

			cfg, err = awsconfig.LoadDefaultConfig(ctx,
				awsconfig.WithRegion(baseRegion),
				awsconfig.WithSharedConfigProfile(profile),
			)

			if err == nil {
				r.Logger.Info("ecr_profile_success").
					Str("profile", profile).
					Send()
				break
			}

			r.Logger.Warn("ecr_profile_failed").
				Str("profile", profile).
				Err(err).
				Send()
		}

		if err != nil {
			return fmt.Errorf("falha em todos os profiles AWS: %w", err)
		}
	} else {
		r.Logger.Debug("ecr_using_default_credentials").Send()
		cfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(baseRegion),
		)
	}

	if err != nil {
		return fmt.Errorf("falha ao carregar configuração AWS: %w", err)
	}

	r.awsConfig = cfg
	r.clients = make(map[string]*ecr.Client, len(r.Regions))
	for _, region := range r.Regions {
		clientRegion := region
		r.clients[region] = ecr.NewFromConfig(cfg, func(o *ecr.Options) {
			o.Region = clientRegion
		})
	}

	if r.AccountID == "" {
		if err := r.discoverAccountID(ctx); err != nil {
			return fmt.Errorf("falha ao descobrir Account ID: %w", err)
		}
	}

	return nil
}

func (r *ECRRegistry) discoverAccountID(ctx context.Context) error {
	stsClient := sts.NewFromConfig(r.awsConfig)

	result, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return err
	}

	r.AccountID = *result.Account
	r.Logger.Debug("account_id_discovered").
		Str("account_id", r.AccountID).
		Send()

	return nil
}

func (r *ECRRegistry) Login(ctx context.Context) error {
	for _, region := range r.Regions {
		username, password, err := r.authToken(ctx, region)
		if err != nil {
			return fmt.Errorf("falha ao obter token ECR na região %s: %w", region, err)
		}

		if err := r.crane.LoginRegistry(ctx, r.registryHost(region), username, password); err != nil {
			return err
		}
	}

	return nil
}

func (r *ECRRegistry) authToken(ctx context.Context, region string) (string, string, error) {
	result, err := r.clients[region].GetAuthorizationToken(ctx, &ecr.GetAuthorizationTokenInput{})
	if err != nil {
		return "", "", err
	}

	if len(result.AuthorizationData) == 0 {
		return "", "", fmt.Errorf("nenhum token de autorização retornado")
	}

	token := aws.ToString(result.AuthorizationData[0].AuthorizationToken)
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", "", fmt.Errorf("falha ao decodificar token de autorização: %w", err)
	}

	parts := strings.SplitN(string(decoded), ":", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("token de autorização em formato inesperado")
	}

	return parts[0], parts[1], nil
}

func (r *ECRRegistry) Validate(ctx context.Context) types.ValidationResult {
	result := types.ValidationResult{Destination: types.KindECR}

	if err := r.crane.Available(); err != nil {
		result.Detail = err.Error()
		return result
	}

	stsClient := sts.NewFromConfig(r.awsConfig)
	identity, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		result.Detail = fmt.Sprintf("credenciais AWS inválidas: %v", err)
		return result
	}

	result.OK = true
	result.Detail = fmt.Sprintf("conta %s, regiões %s", aws.ToString(identity.Account), strings.Join(r.Regions, ", "))
	return result
}

// Push replica a imagem em todas as regiões configuradas. O push só
// conta como sucesso quando todas as regiões recebem a imagem.
func (r *ECRRegistry) Push(ctx context.Context, sourceImage string) error {
	parsed := types.ParseImageName(sourceImage)

	var regionErrors []string
	for _, region := range r.Regions {
		if err := r.pushToRegion(ctx, region, sourceImage, parsed); err != nil {
			regionErrors = append(regionErrors, fmt.Sprintf("%s: %v", region, err))
		}
	}

	if len(regionErrors) > 0 {
		return fmt.Errorf("falha no push para ECR: %s", strings.Join(regionErrors, "; "))
	}

	return nil
}

func (r *ECRRegistry) pushToRegion(ctx context.Context, region, sourceImage string, parsed *types.ParsedImage) error {
	if err := r.ensureRepositoryExists(ctx, region, parsed.FullRepository); err != nil {
		return err
	}

	return r.crane.Copy(ctx, sourceImage, targetReference(r.registryHost(region), parsed))
}

func (r *ECRRegistry) ensureRepositoryExists(ctx context.Context, region, repositoryName string) error {
	client := r.clients[region]

	_, err := client.DescribeRepositories(ctx, &ecr.DescribeRepositoriesInput{
		RepositoryNames: []string{repositoryName},
	})
	if err == nil {
		return nil
	}

	if !strings.Contains(err.Error(), "RepositoryNotFound") {
		return fmt.Errorf("falha ao verificar repositório %s: %w", repositoryName, err)
	}

	r.Logger.Info("ecr_creating_repository").
		Str("repository", repositoryName).
		Str("region", region).
		Send()

	_, err = client.CreateRepository(ctx, &ecr.CreateRepositoryInput{
		RepositoryName: aws.String(repositoryName),
		ImageScanningConfiguration: &ecrTypes.ImageScanningConfiguration{
			ScanOnPush: true,
		},
	})
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return nil
		}
		return fmt.Errorf("falha ao criar repositório %s: %w", repositoryName, err)
	}

	return nil
}

func (r *ECRRegistry) registryHost(region string) string {
	return fmt.Sprintf("%s.dkr.ecr.%s.amazonaws.com", r.AccountID, region)
}
