package faq

import "fmt"

// AIUnavailableMessage is returned when the generative provider cannot answer.
const AIUnavailableMessage = "Sorry, I'm unable to get an answer from AI right now."

// RefusalMessage is the reply for queries unrelated to the institution.
func RefusalMessage(institution string, contact AdminContact) string {
	return fmt.Sprintf("Sorry, I can only answer queries related to %s. Please contact %s at %s.",
		institution, contact.Name, contact.Email)
}

// ErrorMessage is the reply when resolution fails unexpectedly.
func ErrorMessage(contact AdminContact) string {
	return fmt.Sprintf("Sorry, something went wrong. Please contact %s at %s.", contact.Name, contact.Email)
}

func buildPrompt(cfg Config, query string, contact AdminContact) string {
	persona := cfg.Institution
	if cfg.Location != "" {
		persona += ", " + cfg.Location
	}
	return "You are the official AI assistant for " + persona + ". " +
		"Always assume the user is asking about this college, even if they don't mention its name. " +
		"If the question is not related to the college, " +
		"respond only with this exact message: " +
		"'" + RefusalMessage(cfg.Institution, contact) + "'\n\n" +
		"Question: " + query
}
