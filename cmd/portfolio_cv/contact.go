package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-cv/internal/contact"
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Print a mail link for a contact inquiry",
	Long:  "Validates a contact inquiry and prints the mailto: link that opens it, addressed to the portfolio owner.",
	Args:  cobra.NoArgs,
	RunE:  runContact,
}

var (
	contactName     string
	contactEmail    string
	contactMessage  string
	contactTo       string
	contactDataFile string
)

func init() {
	contactCmd.Flags().StringVarP(&contactName, "name", "n", "", "Sender name (required)")
	contactCmd.Flags().StringVarP(&contactEmail, "email", "e", "", "Sender email (required)")
	contactCmd.Flags().StringVarP(&contactMessage, "message", "m", "", "Message text (required)")
	contactCmd.Flags().StringVar(&contactTo, "to", "", "Recipient (default: configured contact email, then the profile email)")
	contactCmd.Flags().StringVarP(&contactDataFile, "data", "d", "", "Path to portfolio data file (JSON or YAML)")

	_ = contactCmd.MarkFlagRequired("name")
	_ = contactCmd.MarkFlagRequired("email")
	_ = contactCmd.MarkFlagRequired("message")

	rootCmd.AddCommand(contactCmd)
}

func runContact(cmd *cobra.Command, _ []string) error {
	to := contactTo
	if to == "" {
		to = cfg.ContactEmail
	}
	if to == "" {
		p, err := loadPortfolio(stringFlag(cmd, "data", contactDataFile, cfg.DataPath))
		if err != nil {
			return err
		}
		to = p.Profile.Email
	}
	if to == "" {
		return fmt.Errorf("no recipient: set --to, contact_email in the config, or profile.email in the data file")
	}

	link, err := contact.MailtoLink(to, contact.Inquiry{
		Name:    contactName,
		Email:   contactEmail,
		Message: contactMessage,
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), link)
	return nil
}
