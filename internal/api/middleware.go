package api

const (
	languageCookieName = "cycleforecast_lang"
	contextLanguageKey = "current_language"
	contextMessagesKey = "current_messages"
	contextCSRFKey     = "csrf"
)
