package api

import (
	"html/template"
)

func newTemplateFuncMap() template.FuncMap {
	return template.FuncMap{
		"t":             templateTranslate,
		"formatDate":    formatTemplateDate,
		"formatFloat":   formatTemplateFloat,
		"formatDecimal": formatTemplateDecimal,
		"statusLabel":   templateStatusLabel,
		"statusClass":   templateStatusClass,
		"dayNote":       templateDayNote,
		"inc":           func(value int) int { return value + 1 },
		"dec":           func(value int) int { return value - 1 },
		"dict":          templateDict,
	}
}
