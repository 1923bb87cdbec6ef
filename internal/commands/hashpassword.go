package commands

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/klabast/wb-services/oweek/internal/app"
)

// minPasswordLen is the shortest editor password accepted
const minPasswordLen = 12

var errInterrupted = errors.New("interrupted")

// HashPassword handles the hash-password subcommand
func HashPassword(args []string) {
	fs := flag.NewFlagSet("hash-password", flag.ExitOnError)
	overwrite := fs.Bool("overwrite", false, "Overwrite existing auth file without asking")
	insecureUnmask := fs.Bool("insecure-unmask-password", false, "Show password as plain text (INSECURE!)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: oweek hash-password [OPTIONS]\n\n")
		fmt.Fprintf(os.Stderr, "Creates the event editor's auth.secret file (Argon2id).\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  AUTH_FILE    Path to auth file (default: auth.secret next to the binary)\n")
	}
	fs.Parse(args)

	stdin := bufio.NewReader(os.Stdin)

	fmt.Print("Enter username: ")
	username, err := readLine(stdin)
	if err != nil || username == "" {
		fatalf("Username cannot be empty")
	}

	read := func(prompt string) string {
		fmt.Print(prompt)
		if *insecureUnmask {
			s, err := readLine(stdin)
			if err != nil {
				fatalf("Error reading password: %v", err)
			}
			return s
		}
		s, err := readPasswordWithMask(stdin)
		if err != nil {
			fatalf("Error reading password: %v", err)
		}
		return s
	}

	if *insecureUnmask {
		fmt.Fprintf(os.Stderr, "⚠️  WARNING: Password will be visible on screen!\n")
	}
	password := read("Enter password:   ")
	confirm := read("Confirm password: ")

	if err := checkPassword(password, confirm); err != nil {
		fatalf("%v", err)
	}

	if err := app.CreateAuthFile(username, password, *overwrite, stdin); err != nil {
		fatalf("Error: %v", err)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// checkPassword validates a new password and its confirmation
func checkPassword(password, confirm string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}
	return nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return trimNewline(line), nil
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

// readPasswordWithMask puts the terminal in raw mode and echoes asterisks.
// Without a terminal it falls back to a plain line read.
func readPasswordWithMask(stdin *bufio.Reader) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return readLine(stdin)
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		password, err := term.ReadPassword(fd)
		fmt.Println()
		return string(password), err
	}
	defer term.Restore(fd, oldState)

	password, err := maskedInput(stdin, os.Stdout)
	// Raw mode needs an explicit carriage return
	fmt.Print("\r\n")
	return password, err
}

// maskedInput reads runes until Enter, echoing '*' per accepted character and
// erasing on backspace
func maskedInput(r io.RuneReader, echo io.Writer) (string, error) {
	var password []byte
	for {
		char, _, err := r.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return string(password), nil
			}
			return "", err
		}

		switch char {
		case '\n', '\r':
			return string(password), nil
		case 127, 8: // Backspace or Delete
			if len(password) > 0 {
				password = password[:len(password)-1]
				fmt.Fprint(echo, "\b \b")
			}
		case 3: // Ctrl+C
			return "", errInterrupted
		default:
			if char >= 32 && char <= 126 {
				password = append(password, byte(char))
				fmt.Fprint(echo, "*")
			}
		}
	}
}
