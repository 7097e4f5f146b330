package cli

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

// PromptForAPIKey interactively asks for the market-data provider API key
// when it is not present in the environment.
func PromptForAPIKey() (string, error) {
	var key string
	prompt := &survey.Password{
		Message: "Enter your Polygon API key:",
		Help:    "Get a key at https://polygon.io. You can also set POLYGON_API_KEY to skip this prompt.",
	}

	err := survey.AskOne(prompt, &key, survey.WithValidator(func(val interface{}) error {
		str, _ := val.(string)
		if strings.TrimSpace(str) == "" {
			return fmt.Errorf("API key cannot be empty")
		}
		return nil
	}))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(key), nil
}

// PromptForQuestion interactively asks for the question to run.
func PromptForQuestion() (string, error) {
	var question string
	prompt := &survey.Input{
		Message: "What do you want to know?",
		Help:    "Ask a market question, e.g. \"What is the latest stock price for AAPL?\"",
	}

	err := survey.AskOne(prompt, &question, survey.WithValidator(func(val interface{}) error {
		str, _ := val.(string)
		if strings.TrimSpace(str) == "" {
			return fmt.Errorf("question cannot be empty")
		}
		return nil
	}))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(question), nil
}
