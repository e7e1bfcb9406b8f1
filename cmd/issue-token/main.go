// issue-token emite un JWT de operador para llamar a la API.
//
// Uso: go run ./cmd/issue-token --user ana --role sales [--minutes 120]
// El secreto y el issuer se leen de JWT_SECRET / JWT_ISSUER (igual que la API).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/jhoicas/leads-api/pkg/config"
	"github.com/jhoicas/leads-api/pkg/jwt"
)

func main() {
	user := pflag.StringP("user", "u", "", "ID del operador (sub)")
	role := pflag.StringP("role", "r", "marketing", "rol: admin | marketing | sales")
	minutes := pflag.IntP("minutes", "m", 0, "minutos de validez (0 = JWT_EXPIRATION_MINUTES)")
	pflag.Parse()

	if *user == "" {
		fmt.Fprintln(os.Stderr, "--user es obligatorio")
		pflag.Usage()
		os.Exit(2)
	}
	switch *role {
	case "admin", "marketing", "sales":
	default:
		fmt.Fprintf(os.Stderr, "rol desconocido: %s\n", *role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	exp := cfg.JWT.Expiration
	if *minutes > 0 {
		exp = *minutes
	}
	token, err := jwt.Generate(cfg.JWT.Secret, *user, *role, cfg.JWT.Issuer, exp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
