package locale

// Pick returns the text matching the request language, defaulting to English.
func Pick(language, english, polish string) string {
	if NormalizeLanguage(language) == LanguagePolish {
		if polish != "" {
			return polish
		}
		return english
	}
	if english != "" {
		return english
	}
	return polish
}
