package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/fpbatch-converter/pkg/jwt"
)

func newTokenCmd(c *cli) *cobra.Command {
	var (
		user    string
		minutes int
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un token JWT para la API (usa JWT_SECRET)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if minutes <= 0 {
				minutes = c.cfg.JWT.Expiration
			}
			tok, err := jwt.Generate(c.cfg.JWT.Secret, user, c.cfg.JWT.Issuer, minutes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "usuario que quedará en el token")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "vigencia en minutos (por defecto JWT_EXPIRATION_MINUTES)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
