package api

var pageTemplates = []string{
	"index",
	"results",
	"not_found",
}
