package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vivaleve/internal/domain"
)

func TestMotivationalMessage(t *testing.T) {
	tests := []struct {
		change  float64
		tone    domain.Tone
		message string
	}{
		{-3, domain.ToneSuccess, "🎉 Parabéns! Você perdeu 3.0 kg!"},
		{-2, domain.ToneSuccess, "✅ Ótimo progresso! Você perdeu 2.0 kg!"},
		{-0.6, domain.ToneSuccess, "✅ Ótimo progresso! Você perdeu 0.6 kg!"},
		{-0.5, domain.ToneInfo, "💪 Peso estável! Consistência é a chave para o sucesso!"},
		{0, domain.ToneInfo, "💪 Peso estável! Consistência é a chave para o sucesso!"},
		{0.5, domain.ToneInfo, "💪 Peso estável! Consistência é a chave para o sucesso!"},
		{1, domain.ToneWarning, "📈 Você ganhou 1.0 kg. Continue focado no seu objetivo!"},
		{2, domain.ToneWarning, "📈 Você ganhou 2.0 kg. Continue focado no seu objetivo!"},
		{2.5, domain.ToneWarning, "⚠️ Atenção! Você ganhou 2.5 kg. Que tal revisar sua alimentação?"},
	}
	for _, tc := range tests {
		got := domain.MotivationalMessage(tc.change)
		assert.Equal(t, tc.tone, got.Tone, "change %v", tc.change)
		assert.Equal(t, tc.message, got.Message, "change %v", tc.change)
	}
}
