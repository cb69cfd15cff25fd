package domain

import (
	"fmt"
	"math"
)

// Tone classifies a motivational message.
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneInfo    Tone = "info"
)

// Motivation is the message shown after a weight change.
type Motivation struct {
	Message string `json:"message"`
	Tone    Tone   `json:"tone"`
}

// MotivationalMessage picks a message for change = latest - previous weight.
func MotivationalMessage(change float64) Motivation {
	switch {
	case change < -2:
		return Motivation{
			Message: fmt.Sprintf("🎉 Parabéns! Você perdeu %.1f kg!", math.Abs(change)),
			Tone:    ToneSuccess,
		}
	case change < -0.5:
		return Motivation{
			Message: fmt.Sprintf("✅ Ótimo progresso! Você perdeu %.1f kg!", math.Abs(change)),
			Tone:    ToneSuccess,
		}
	case change > 2:
		return Motivation{
			Message: fmt.Sprintf("⚠️ Atenção! Você ganhou %.1f kg. Que tal revisar sua alimentação?", change),
			Tone:    ToneWarning,
		}
	case change > 0.5:
		return Motivation{
			Message: fmt.Sprintf("📈 Você ganhou %.1f kg. Continue focado no seu objetivo!", change),
			Tone:    ToneWarning,
		}
	default:
		return Motivation{
			Message: "💪 Peso estável! Consistência é a chave para o sucesso!",
			Tone:    ToneInfo,
		}
	}
}
