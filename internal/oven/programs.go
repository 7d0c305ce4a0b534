package oven

import (
	"strings"

	"microwave/internal/models"
)

var predefinedPrograms = []models.PredefinedProgram{
	{
		Name:          "Pipoca",
		Food:          "Pipoca (de micro-ondas)",
		TimeInSeconds: 180,
		PowerLevel:    7,
		Character:     "∩",
		Instructions:  "Observar o barulho de estouros do milho, caso houver um intervalo de mais de 10 segundos entre um estouro e outro, interrompa o aquecimento.",
	},
	{
		Name:          "Leite",
		Food:          "Leite",
		TimeInSeconds: 300,
		PowerLevel:    5,
		Character:     "∿",
		Instructions:  "Cuidado com aquecimento de líquidos, o choque térmico aliado ao movimento do recipiente pode causar fervura imediata causando risco de queimaduras.",
	},
	{
		Name:          "Carnes de boi",
		Food:          "Carne em pedaço ou fatias",
		TimeInSeconds: 840,
		PowerLevel:    4,
		Character:     "≡",
		Instructions:  "Interrompa o processo na metade e vire o conteúdo com a parte de baixo para cima para o descongelamento uniforme.",
	},
	{
		Name:          "Frango",
		Food:          "Frango (qualquer corte)",
		TimeInSeconds: 480,
		PowerLevel:    7,
		Character:     "∴",
		Instructions:  "Interrompa o processo na metade e vire o conteúdo com a parte de baixo para cima para o descongelamento uniforme.",
	},
	{
		Name:          "Feijão",
		Food:          "Feijão congelado",
		TimeInSeconds: 480,
		PowerLevel:    9,
		Character:     "◊",
		Instructions:  "Deixe o recipiente destampado e em casos de plástico, cuidado ao retirar o recipiente pois o mesmo pode perder resistência em altas temperaturas.",
	},
}

// PredefinedPrograms returns a copy of the fixed presets in display order.
func PredefinedPrograms() []models.PredefinedProgram {
	out := make([]models.PredefinedProgram, len(predefinedPrograms))
	copy(out, predefinedPrograms)
	return out
}

// FindPredefined looks a preset up by its exact name.
func FindPredefined(name string) (models.PredefinedProgram, bool) {
	for _, p := range predefinedPrograms {
		if p.Name == name {
			return p, true
		}
	}
	return models.PredefinedProgram{}, false
}

// PredefinedID is the catalog id of a preset: its name without spaces, lowercased.
func PredefinedID(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ""))
}

// CustomProgramRef is the session program id of a running custom program.
func CustomProgramRef(id string) string {
	return customProgramPrefix + id
}

const customProgramPrefix = "custom-"
