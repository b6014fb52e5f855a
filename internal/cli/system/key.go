package system

import (
	"errors"
	"fmt"

	"dewy/internal/cli"
	"dewy/internal/keyring"
)

// KeySetCmd stores the Gemini API key in the OS keyring
type KeySetCmd struct {
	Key string `arg:"" help:"Gemini API key to store."`
}

func (cmd *KeySetCmd) Run(ctx *cli.Context) error {
	if err := keyring.SetAPIKey(cmd.Key); err != nil {
		return err
	}
	fmt.Println("✓ API key stored in the OS keyring")
	fmt.Println("  Product classification will now use Gemini.")
	return nil
}

// KeyDeleteCmd removes the Gemini API key from the OS keyring
type KeyDeleteCmd struct{}

func (cmd *KeyDeleteCmd) Run(ctx *cli.Context) error {
	err := keyring.DeleteAPIKey()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no API key found in keyring")
		}
		return err
	}
	fmt.Println("✓ API key deleted from the OS keyring")
	fmt.Println("  Product classification falls back to the built-in rules.")
	return nil
}

// KeyStatusCmd checks keyring availability and whether a key is stored
type KeyStatusCmd struct{}

func (cmd *KeyStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("❌ OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}
	fmt.Println("✓ OS keyring is available")

	_, err := keyring.GetAPIKey()
	switch {
	case err == nil:
		fmt.Println("✓ Gemini API key is stored")
	case errors.Is(err, keyring.ErrNotFound):
		fmt.Println("ℹ No API key stored, classification uses the built-in rules")
	default:
		return err
	}
	return nil
}
