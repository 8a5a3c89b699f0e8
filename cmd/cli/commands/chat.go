package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

const flagConversationID = "conversation-id"

// GetChatCmd returns the chat command
func GetChatCmd() *cobra.Command {
	chatCmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Send a message to the assistant",
		Long: `Send a message to the assistant and print its reply.
Pass --conversation-id to continue an existing conversation,
otherwise a new one is started.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conversationID, err := cmd.Flags().GetString(flagConversationID)
			if err != nil {
				return fmt.Errorf("error getting conversation-id flag: %w", err)
			}

			reply, err := apiClient.Chat(cmd.Context(), conversationID, strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("chat request failed: %w", err)
			}
			fmt.Println(reply)
			return nil
		},
	}
	chatCmd.Flags().StringP(flagConversationID, "c", "", "Conversation ID to continue")
	return chatCmd
}
