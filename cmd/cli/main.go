package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "contas-cli",
		Short: "Contas CLI tool",
		Long:  `A command line interface for interacting with the Contas API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Contas API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(accountsCmd())
	rootCmd.AddCommand(itemsCmd())
	rootCmd.AddCommand(paymentsCmd())
	rootCmd.AddCommand(invokeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return doRequest(http.MethodGet, "/api/v1/accounts", nil)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <account-id>",
		Short: "Get an account with its items and payments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doRequest(http.MethodGet, "/api/v1/accounts/"+args[0], nil)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create <owner>",
		Short: "Create an account for an owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doRequest(http.MethodPost, "/api/v1/accounts", map[string]any{"owner": args[0]})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <account-id>",
		Short: "Delete an account and its items and payments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doRequest(http.MethodDelete, "/api/v1/accounts/"+args[0], nil)
		},
	})

	return cmd
}

func itemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Item operations",
	}

	var (
		name     string
		quantity int
		price    string
		notes    string
	)

	addCmd := &cobra.Command{
		Use:   "add <account-id>",
		Short: "Add an item to an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doRequest(http.MethodPost, "/api/v1/accounts/"+args[0]+"/items", map[string]any{
				"name":     name,
				"quantity": quantity,
				"price":    json.Number(price),
				"notes":    notes,
			})
		},
	}
	addCmd.Flags().StringVar(&name, "name", "", "Item name")
	addCmd.Flags().IntVar(&quantity, "quantity", 1, "Item quantity")
	addCmd.Flags().StringVar(&price, "price", "0.00", "Unit price")
	addCmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <item-id>",
		Short: "Remove an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doRequest(http.MethodDelete, "/api/v1/items/"+args[0], nil)
		},
	})

	return cmd
}

func paymentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Payment operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <account-id> <amount>",
		Short: "Record a payment against an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doRequest(http.MethodPost, "/api/v1/accounts/"+args[0]+"/payments", map[string]any{
				"amount": json.Number(args[1]),
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <payment-id>",
		Short: "Remove a payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doRequest(http.MethodDelete, "/api/v1/payments/"+args[0], nil)
		},
	})

	return cmd
}

func invokeCmd() *cobra.Command {
	var argsJSON string

	cmd := &cobra.Command{
		Use:   "invoke <command>",
		Short: "Invoke a named command with JSON arguments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdArgs, err := parseArgsJSON(argsJSON)
			if err != nil {
				return err
			}
			return doRequest(http.MethodPost, "/api/v1/commands", map[string]any{
				"command": args[0],
				"args":    cmdArgs,
			})
		},
	}
	cmd.Flags().StringVar(&argsJSON, "args", "{}", "Command arguments as a JSON object")

	return cmd
}

func parseArgsJSON(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return map[string]any{}, nil
	}

	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, fmt.Errorf("invalid --args JSON: %w", err)
	}
	return args, nil
}

func doRequest(method, path string, payload any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = strings.NewReader(string(data))
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if len(raw) == 0 {
		fmt.Println("OK")
		return nil
	}

	var pretty any
	if err := json.Unmarshal(raw, &pretty); err != nil {
		fmt.Println(string(raw))
		return nil
	}
	printJSON(pretty)
	return nil
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render response: %v\n", err)
		return
	}
	fmt.Println(string(data))
}
