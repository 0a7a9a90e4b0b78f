package cli

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"stockscope/internal/dataflows"
	"stockscope/internal/model"
)

// PromptForTicker prompts the user to enter a stock ticker symbol
func PromptForTicker() (string, error) {
	var ticker string
	prompt := &survey.Input{
		Message: "Enter the stock ticker symbol (e.g., AAPL, MSFT, GOOGL):",
		Help:    "Please enter a valid stock ticker symbol for analysis",
	}

	err := survey.AskOne(prompt, &ticker, survey.WithValidator(func(val interface{}) error {
		str, ok := val.(string)
		if !ok {
			return fmt.Errorf("invalid input type")
		}
		return dataflows.ValidateTicker(dataflows.NormalizeTicker(str))
	}))
	if err != nil {
		return "", err
	}

	return dataflows.NormalizeTicker(ticker), nil
}

// PromptForTimeframe prompts the user to select an analysis timeframe
func PromptForTimeframe() (model.Timeframe, error) {
	options := make([]string, len(model.Timeframes))
	for i, tf := range model.Timeframes {
		options[i] = string(tf)
	}

	var selected string
	prompt := &survey.Select{
		Message: "Select the analysis timeframe:",
		Options: options,
		Help:    "How far back the price history should reach. YTD starts at January 1st, Max fetches all available history.",
		Default: string(model.Timeframe1Y),
	}

	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}
	return model.ParseTimeframe(selected)
}

// PromptForRestartOrExit prompts the user when an analysis completes
func PromptForRestartOrExit() (bool, error) {
	var choice string
	prompt := &survey.Select{
		Message: "Analysis completed! What would you like to do next?",
		Options: []string{
			"Analyze another stock",
			"Exit StockScope",
		},
		Default: "Analyze another stock",
	}

	if err := survey.AskOne(prompt, &choice); err != nil {
		return false, err
	}
	return strings.HasPrefix(choice, "Analyze"), nil
}
