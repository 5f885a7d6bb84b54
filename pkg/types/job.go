package types

import "fmt"

type RegistryKind string

const (
	KindECR   RegistryKind = "ECR"
	KindGAR   RegistryKind = "GAR"
	KindACR   RegistryKind = "ACR"
	KindJFROG RegistryKind = "JFROG"
	KindDOCR  RegistryKind = "DOCR"
)

func RegistryKinds() []RegistryKind {
	return []RegistryKind{KindECR, KindGAR, KindACR, KindJFROG, KindDOCR}
}

// ParseRegistryKind aceita apenas os tokens exatos da lista de imagens.
// A comparação é sensível a maiúsculas: "ecr" não é um destino válido.
func ParseRegistryKind(token string) (RegistryKind, error) {
	switch RegistryKind(token) {
	case KindECR, KindGAR, KindACR, KindJFROG, KindDOCR:
		return RegistryKind(token), nil
	}
	return "", fmt.Errorf("tipo de registry não suportado: %s", token)
}

func (k RegistryKind) String() string {
	return string(k)
}

type MirrorJob struct {
	Line         int            `json:"line"`
	SourceImage  string         `json:"source_image"`
	Destinations []RegistryKind `json:"destinations"`
}
