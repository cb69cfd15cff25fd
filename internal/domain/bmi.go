package domain

import "math"

// BMIResult is the outcome of a single BMI calculation.
type BMIResult struct {
	BMI            float64 `json:"bmi"`
	Classification string  `json:"classification"`
	Message        string  `json:"message"`
	Color          string  `json:"color"`
}

// BMIBand is one row of the classification table. Min is inclusive; a band
// with Max == 0 is unbounded above.
type BMIBand struct {
	Min            float64 `json:"min"`
	Max            float64 `json:"max,omitempty"`
	Range          string  `json:"range"`
	Classification string  `json:"classification"`
	Message        string  `json:"message"`
	Color          string  `json:"color"`
}

// BMIBands is ordered from lowest to highest.
var BMIBands = []BMIBand{
	{
		Min: 0, Max: 18.5,
		Range:          "Abaixo de 18.5",
		Classification: "Baixo peso",
		Message:        "Que tal adicionar mais calorias saudáveis à sua dieta? Consulte um nutricionista!",
		Color:          "blue",
	},
	{
		Min: 18.5, Max: 25,
		Range:          "18.5 - 24.9",
		Classification: "Peso normal",
		Message:        "Parabéns! Seu peso está na faixa ideal. Continue mantendo hábitos saudáveis!",
		Color:          "green",
	},
	{
		Min: 25, Max: 30,
		Range:          "25.0 - 29.9",
		Classification: "Sobrepeso",
		Message:        "Você está no caminho certo! Com dedicação e as receitas certas, logo alcançará seu objetivo!",
		Color:          "yellow",
	},
	{
		Min:            30,
		Range:          "30.0 ou mais",
		Classification: "Obesidade",
		Message:        "Não desista! Cada pequeno passo conta. Estamos aqui para te apoiar nessa jornada!",
		Color:          "red",
	},
}

// CalculateBMI computes the body-mass index for weight in kg and height in
// meters. Callers must pass positive values.
func CalculateBMI(weightKg, heightM float64) BMIResult {
	bmi := roundTenths(weightKg / (heightM * heightM))
	band := ClassifyBMI(bmi)
	return BMIResult{
		BMI:            bmi,
		Classification: band.Classification,
		Message:        band.Message,
		Color:          band.Color,
	}
}

// ClassifyBMI returns the band containing bmi.
func ClassifyBMI(bmi float64) BMIBand {
	for _, b := range BMIBands {
		if b.Max == 0 || bmi < b.Max {
			return b
		}
	}
	return BMIBands[len(BMIBands)-1]
}

// roundTenths rounds half up on the tenths digit.
func roundTenths(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
