// Command hash-password prints a bcrypt hash for seeding accounts directly
// in the database, for example the first admin user.
//
//	echo -n 's3cret-pass' | hash-password -cost 12
//	hash-password -password 's3cret-pass' -username root -email root@example.com
//
// With -username and -email it prints an INSERT statement for an admin
// account instead of the bare hash.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mediahub/mediahub-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

var errNoPassword = errors.New("no password given")

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "hash-password:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("hash-password", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cost := fs.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	password := fs.String("password", "", "password to hash (read from stdin when empty)")
	username := fs.String("username", "", "print an admin INSERT for this username")
	email := fs.String("email", "", "email for the admin INSERT")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pw := *password
	if pw == "" {
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read password: %w", err)
		}
		pw = strings.TrimRight(line, "\r\n")
	}
	if pw == "" {
		return errNoPassword
	}

	hash, err := auth.NewBcryptHasher(*cost).Hash(pw)
	if err != nil {
		return err
	}

	if *username == "" {
		_, err = fmt.Fprintln(stdout, hash)
		return err
	}
	if *email == "" {
		return errors.New("-email is required with -username")
	}

	_, err = fmt.Fprintf(stdout,
		"INSERT INTO users (username, email, role, password_hash) VALUES (%s, %s, 'admin', %s);\n",
		quote(*username), quote(*email), quote(hash))
	return err
}

// quote renders s as a SQL string literal.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
