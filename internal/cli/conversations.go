package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Void-n-Null/speedytavern-sub003/internal/chat"
	"github.com/Void-n-Null/speedytavern-sub003/internal/storage"
)

func ConversationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "conversations",
		Short: "List stored conversations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			convs, err := storage.ListConversations(db)
			if err != nil {
				return err
			}
			if len(convs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No conversations yet. Run `speedytavern new` to create one.")
				return nil
			}
			for _, c := range convs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  (%s)\n",
					c.ID, c.Title, c.CreatedAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func NewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new [title]",
		Short: "Create a conversation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := ""
			if len(args) > 0 {
				title = strings.TrimSpace(args[0])
			}
			if title == "" {
				title = fmt.Sprintf("Conversation %s", time.Now().Format("Jan 2 15:04"))
			}

			db, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			id := uuid.NewString()
			conv := storage.Conversation{ID: id, Title: title, CreatedAt: time.Now()}
			if err := storage.InsertConversation(db, conv); err != nil {
				return err
			}
			for _, sp := range []chat.Speaker{
				{ID: uuid.NewString(), Name: "You", IsUser: true},
				{ID: uuid.NewString(), Name: "Bot"},
			} {
				if err := storage.InsertSpeaker(db, id, sp); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}
