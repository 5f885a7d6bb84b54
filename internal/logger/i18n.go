package logger

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type LocaleMessages struct {
	Messages map[string]string `yaml:"messages"`
}

func loadLocaleMessages(language string) (map[string]string, error) {
	filename := language + ".yaml"

	localeFile := filepath.Join("locales", filename)

	data, err := os.ReadFile(localeFile)
	if err != nil {
		fallbackFile := filepath.Join("locales", "en-US.yaml")
		data, err = os.ReadFile(fallbackFile)
		if err != nil {
			return getEmbeddedMessages("en-US"), nil
		}
	}

	var locale LocaleMessages
	if err := yaml.Unmarshal(data, &locale); err != nil {
		return getEmbeddedMessages(language), nil
	}

	return locale.Messages, nil
}

func getEmbeddedMessages(language string) map[string]string {
	switch strings.ToLower(language) {
	case "pt-br":
		return map[string]string{
			"app_started":                   "Corsair iniciado",
			"config_not_found":              "Arquivo de configuração não encontrado",
			"config_loaded":                 "Configuração carregada",
			"config_created":                "Arquivo de configuração criado",
			"config_already_exists":         "Arquivo de configuração já existe",
			"image_list_loaded":             "Lista de imagens carregada",
			"image_list_invalid":            "Lista de imagens contém erros",
			"image_list_line_error":         "Erro na linha da lista de imagens",
			"image_list_entry":              "Entrada da lista de imagens",
			"image_list_created":            "Lista de imagens de exemplo criada",
			"empty_image_list":              "Lista de imagens vazia, nada a espelhar",
			"validation_started":            "Validando destinos configurados",
			"validation_passed":             "Todos os destinos passaram na validação",
			"validation_failed":             "Validação de destinos falhou",
			"validation_destination_ok":     "Destino validado",
			"validation_destination_failed": "Destino reprovado na validação",
			"registry_added":                "Registry adicionado",
			"registry_add_failed":           "Falha ao adicionar registry",
			"registry_disabled":             "Registry desabilitado, ignorando",
			"registry_login_started":        "Autenticando no registry",
			"registry_login_ok":             "Autenticado no registry",
			"registry_login_failed":         "Falha na autenticação do registry",
			"no_registries_configured":      "Nenhum registry configurado",
			"account_id_discovered":         "ID da conta AWS descoberto via STS",
			"ecr_using_credentials":         "Usando credenciais estáticas da AWS",
			"ecr_using_profiles":            "Usando profiles da AWS",
			"ecr_trying_profile":            "Testando profile da AWS",
			"ecr_profile_success":           "Profile da AWS autenticado",
			"ecr_profile_failed":            "Profile da AWS falhou",
			"ecr_using_default_credentials": "Usando cadeia padrão de credenciais da AWS",
			"ecr_creating_repository":       "Criando repositório no ECR",
			"gar_creating_repository":       "Criando repositório no Artifact Registry",
			"acr_login_completed":           "Login no ACR concluído",
			"crane_copy_started":            "Cópia via crane iniciada",
			"crane_copy_completed":          "Cópia via crane concluída",
			"crane_login_completed":         "Login via crane concluído",
			"mirror_started":                "Espelhamento iniciado",
			"mirror_completed":              "Espelhamento concluído",
			"mirror_had_failures":           "Espelhamento concluído com falhas",
			"mirror_failure_detail":         "Falha no espelhamento",
			"push_attempt_failed":           "Tentativa de push falhou",
			"retry_backoff":                 "Aguardando antes da próxima tentativa",
			"dry_run_would_mirror":          "Simulação: imagem seria espelhada",
			"operation_completed":           "Operação concluída",
			"operation_failed":              "Operação falhou",
			"html_report_ready":             "Relatório HTML gerado",
			"html_report_generated":         "Relatório HTML salvo",
			"html_report_failed":            "Falha ao gerar relatório HTML",
			"discord_webhook_enabled":       "Webhook do Discord habilitado",
			"discord_webhook_sent":          "Notificação enviada ao Discord",
			"discord_webhook_failed":        "Falha ao enviar notificação ao Discord",
			"validate_short":                "Valida os destinos configurados sem espelhar nada",
			"validate_long":                 "Verifica credenciais, binários e permissões de cada registry de destino habilitado, sem copiar nenhuma imagem",
		}
	case "es-es":
		return map[string]string{
			"app_started":                   "Corsair iniciado",
			"config_not_found":              "Archivo de configuración no encontrado",
			"config_loaded":                 "Configuración cargada",
			"config_created":                "Archivo de configuración creado",
			"config_already_exists":         "Archivo de configuración ya existe",
			"image_list_loaded":             "Lista de imágenes cargada",
			"image_list_invalid":            "La lista de imágenes contiene errores",
			"image_list_line_error":         "Error en línea de la lista de imágenes",
			"image_list_entry":              "Entrada de la lista de imágenes",
			"image_list_created":            "Lista de imágenes de ejemplo creada",
			"empty_image_list":              "Lista de imágenes vacía, nada que replicar",
			"validation_started":            "Validando destinos configurados",
			"validation_passed":             "Todos los destinos pasaron la validación",
			"validation_failed":             "La validación de destinos falló",
			"validation_destination_ok":     "Destino validado",
			"validation_destination_failed": "Destino rechazado en la validación",
			"registry_added":                "Registry agregado",
			"registry_add_failed":           "Error al agregar registry",
			"registry_disabled":             "Registry deshabilitado, ignorado",
			"registry_login_started":        "Autenticando en el registry",
			"registry_login_ok":             "Autenticado en el registry",
			"registry_login_failed":         "Error de autenticación en el registry",
			"no_registries_configured":      "Ningún registry configurado",
			"account_id_discovered":         "ID de cuenta de AWS descubierto vía STS",
			"ecr_using_credentials":         "Usando credenciales estáticas de AWS",
			"ecr_using_profiles":            "Usando profiles de AWS",
			"ecr_trying_profile":            "Probando profile de AWS",
			"ecr_profile_success":           "Profile de AWS autenticado",
			"ecr_profile_failed":            "Profile de AWS falló",
			"ecr_using_default_credentials": "Usando cadena de credenciales por defecto de AWS",
			"ecr_creating_repository":       "Creando repositorio en ECR",
			"gar_creating_repository":       "Creando repositorio en Artifact Registry",
			"acr_login_completed":           "Inicio de sesión en ACR completado",
			"crane_copy_started":            "Copia vía crane iniciada",
			"crane_copy_completed":          "Copia vía crane completada",
			"crane_login_completed":         "Inicio de sesión vía crane completado",
			"mirror_started":                "Replicación iniciada",
			"mirror_completed":              "Replicación completada",
			"mirror_had_failures":           "Replicación completada con errores",
			"mirror_failure_detail":         "Error en la replicación",
			"push_attempt_failed":           "Intento de push falló",
			"retry_backoff":                 "Esperando antes del próximo intento",
			"dry_run_would_mirror":          "Simulación: la imagen sería replicada",
			"operation_completed":           "Operación completada",
			"operation_failed":              "Operación falló",
			"html_report_ready":             "Informe HTML generado",
			"html_report_generated":         "Informe HTML guardado",
			"html_report_failed":            "Error al generar informe HTML",
			"discord_webhook_enabled":       "Webhook de Discord habilitado",
			"discord_webhook_sent":          "Notificación enviada a Discord",
			"discord_webhook_failed":        "Error al enviar notificación a Discord",
			"validate_short":                "Valida los destinos configurados sin replicar nada",
			"validate_long":                 "Verifica credenciales, binarios y permisos de cada registry de destino habilitado, sin copiar ninguna imagen",
		}
	default:
		return map[string]string{
			"app_started":                   "Corsair started",
			"config_not_found":              "Configuration file not found",
			"config_loaded":                 "Configuration loaded",
			"config_created":                "Configuration file created",
			"config_already_exists":         "Configuration file already exists",
			"image_list_loaded":             "Image list loaded",
			"image_list_invalid":            "Image list contains errors",
			"image_list_line_error":         "Image list line error",
			"image_list_entry":              "Image list entry",
			"image_list_created":            "Example image list created",
			"empty_image_list":              "Image list is empty, nothing to mirror",
			"validation_started":            "Validating configured destinations",
			"validation_passed":             "All destinations passed validation",
			"validation_failed":             "Destination validation failed",
			"validation_destination_ok":     "Destination validated",
			"validation_destination_failed": "Destination failed validation",
			"registry_added":                "Registry added",
			"registry_add_failed":           "Failed to add registry",
			"registry_disabled":             "Registry disabled, skipping",
			"registry_login_started":        "Authenticating to registry",
			"registry_login_ok":             "Authenticated to registry",
			"registry_login_failed":         "Registry authentication failed",
			"no_registries_configured":      "No registries configured",
			"account_id_discovered":         "AWS account ID discovered via STS",
			"ecr_using_credentials":         "Using static AWS credentials",
			"ecr_using_profiles":            "Using AWS profiles",
			"ecr_trying_profile":            "Trying AWS profile",
			"ecr_profile_success":           "AWS profile authenticated",
			"ecr_profile_failed":            "AWS profile failed",
			"ecr_using_default_credentials": "Using default AWS credential chain",
			"ecr_creating_repository":       "Creating ECR repository",
			"gar_creating_repository":       "Creating Artifact Registry repository",
			"acr_login_completed":           "ACR login completed",
			"crane_copy_started":            "Crane copy started",
			"crane_copy_completed":          "Crane copy completed",
			"crane_login_completed":         "Crane login completed",
			"mirror_started":                "Mirror run started",
			"mirror_completed":              "Mirror run completed",
			"mirror_had_failures":           "Mirror run completed with failures",
			"mirror_failure_detail":         "Mirror failure",
			"push_attempt_failed":           "Push attempt failed",
			"retry_backoff":                 "Waiting before next attempt",
			"dry_run_would_mirror":          "Dry run: image would be mirrored",
			"operation_completed":           "Operation completed",
			"operation_failed":              "Operation failed",
			"html_report_ready":             "HTML report generated",
			"html_report_generated":         "HTML report written",
			"html_report_failed":            "Failed to generate HTML report",
			"discord_webhook_enabled":       "Discord webhook enabled",
			"discord_webhook_sent":          "Discord notification sent",
			"discord_webhook_failed":        "Failed to send Discord notification",
			"validate_short":                "Validate configured destinations without mirroring anything",
			"validate_long":                 "Check credentials, binaries and permissions for every enabled destination registry without copying any image",
		}
	}
}
