package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRegistryKind(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    RegistryKind
		wantErr bool
	}{
		{name: "ECR", token: "ECR", want: KindECR},
		{name: "GAR", token: "GAR", want: KindGAR},
		{name: "ACR", token: "ACR", want: KindACR},
		{name: "JFROG", token: "JFROG", want: KindJFROG},
		{name: "DOCR", token: "DOCR", want: KindDOCR},
		{name: "minúsculas são rejeitadas", token: "ecr", wantErr: true},
		{name: "caixa mista é rejeitada", token: "Gar", wantErr: true},
		{name: "desconhecido", token: "HARBOR", wantErr: true},
		{name: "vazio", token: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := ParseRegistryKind(tt.token)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "tipo de registry não suportado")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestRegistryKinds_CanonicalOrder(t *testing.T) {
	assert.Equal(t, []RegistryKind{KindECR, KindGAR, KindACR, KindJFROG, KindDOCR}, RegistryKinds())
}
