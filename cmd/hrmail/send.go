package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hrmail/hrmail/internal/service"
	"github.com/hrmail/hrmail/internal/template"
)

var (
	sendName  string
	sendEmail string
	sendCc    string
	sendBcc   string
	sendYes   bool
)

var sendCmd = &cobra.Command{
	Use:               "send KEY",
	Short:             "Send a templated e-mail to one candidate",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTemplateKeys,
	RunE:              runSend,
}

func init() {
	sendCmd.Flags().StringVarP(&sendName, "name", "n", "", "candidate name")
	sendCmd.Flags().StringVarP(&sendEmail, "email", "e", "", "candidate e-mail address")
	sendCmd.Flags().StringVar(&sendCc, "cc", "", "comma separated Cc addresses")
	sendCmd.Flags().StringVar(&sendBcc, "bcc", "", "comma separated Bcc addresses")
	sendCmd.Flags().BoolVarP(&sendYes, "yes", "y", false, "do not ask for confirmation")
}

func runSend(cmd *cobra.Command, args []string) error {
	key := args[0]
	if !template.Known(key) {
		return fmt.Errorf("%w: %q", template.ErrUnknownTemplate, key)
	}

	confirmer := newPromptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
	a, err := newApp(cmd.ErrOrStderr(), confirmer)
	if err != nil {
		return err
	}

	res := a.sender.SendTemplatedEmail(cmd.Context(), service.SendRequest{
		TemplateKey:    key,
		RecipientName:  sendName,
		RecipientEmail: sendEmail,
		Cc:             sendCc,
		Bcc:            sendBcc,
		Confirmed:      sendYes,
	})
	return reportSend(cmd.OutOrStdout(), key, strings.TrimSpace(sendEmail), res)
}

// reportSend prints the outcome for the address the message went to.
func reportSend(out io.Writer, key, to string, res service.SendResult) error {
	switch res.Status {
	case service.StatusSent:
		title, _ := template.Title(key)
		fmt.Fprintf(out, "Sent %q to %s (message id %s).\n", title, to, res.MessageID)
		return nil
	case service.StatusDeclined:
		fmt.Fprintln(out, "Not sent.")
		return nil
	default:
		return res.Err
	}
}
