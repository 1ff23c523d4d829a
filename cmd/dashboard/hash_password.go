// cmd/dashboard/hash_password.go
package main

import (
	"fmt"

	"dre-service/internal/core/auth"

	"github.com/spf13/cobra"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <senha>",
	Short: "Gera o hash bcrypt de uma senha para o campo passwordHash do Firestore",
	Args:  cobra.ExactArgs(1),
	Annotations: map[string]string{
		"skipConfig": "true",
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := auth.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}
