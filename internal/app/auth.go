package app

import (
	"bufio"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Editor credentials, loaded by LoadAuthCredentials
var (
	EditUser       string
	authSecretFile string
	authHash       []byte
)

const (
	DefaultAuthFile = "auth.secret"
	AuthRealm       = "O-Week Event Editor"
)

// Argon2id parameters (OWASP recommended)
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32
	saltLen       = 16
)

// authFilePath returns AUTH_FILE or auth.secret next to the binary
func authFilePath() (string, error) {
	if path := os.Getenv("AUTH_FILE"); path != "" {
		return path, nil
	}
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	return filepath.Join(filepath.Dir(execPath), DefaultAuthFile), nil
}

// LoadAuthCredentials loads the editor credentials. Without an auth file the
// editor stays unprotected, which is only meant for local development.
func LoadAuthCredentials() error {
	path, err := authFilePath()
	if err != nil {
		return err
	}
	authSecretFile = path

	data, err := os.ReadFile(authSecretFile)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("⚠️  No auth file found at %s: the event editor is UNPROTECTED (local development only)", authSecretFile)
			log.Printf("⚠️  Create one with: oweek hash-password")
			return nil
		}
		return fmt.Errorf("failed to read auth file: %w", err)
	}

	// Format: username:hash
	line := strings.TrimSpace(string(data))
	user, hash, found := strings.Cut(line, ":")
	if !found || user == "" || hash == "" {
		return fmt.Errorf("invalid auth file format (expected: username:hash)")
	}

	EditUser = user
	authHash = []byte(hash)

	log.Printf("✅ Basic Auth enabled for the event editor (user: %s, file: %s)", EditUser, authSecretFile)
	return nil
}

// HashPassword creates an Argon2id hash in PHC string format
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argon2Memory, argon2Time, argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash)), nil
}

// VerifyPassword verifies a password against an Argon2id hash
func VerifyPassword(password, hash string) (bool, error) {
	// $argon2id$v=19$m=65536,t=1,p=4$salt$hash
	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		return false, fmt.Errorf("invalid hash format")
	}
	if parts[1] != "argon2id" {
		return false, fmt.Errorf("not an argon2id hash")
	}

	var memory, iterations uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false, fmt.Errorf("failed to parse hash parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("failed to decode salt: %w", err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("failed to decode hash: %w", err)
	}

	got := argon2.IDKey([]byte(password), salt, iterations, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(want, got) == 1, nil
}

// RequireAuth is a middleware that enforces Basic Auth with Argon2id
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// No auth file loaded (dev mode)
		if authHash == nil {
			next(w, r)
			return
		}

		user, pass, ok := r.BasicAuth()
		userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(EditUser)) == 1

		passMatch := false
		if ok && userMatch {
			var err error
			passMatch, err = VerifyPassword(pass, string(authHash))
			if err != nil {
				log.Printf("Error verifying password: %v", err)
			}
		}

		if !ok || !userMatch || !passMatch {
			w.Header().Set("WWW-Authenticate", fmt.Sprintf("Basic realm=%q", AuthRealm))
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			log.Printf("⚠️  Failed auth attempt from %s (user: %s)", r.RemoteAddr, user)
			return
		}

		next(w, r)
	}
}

// CreateAuthFile writes username:hash to the auth file (mode 0400). An
// existing file is replaced when overwrite is set or confirm answers yes.
func CreateAuthFile(username, password string, overwrite bool, confirm io.Reader) error {
	authFile, err := authFilePath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(authFile); err == nil {
		if !overwrite {
			fmt.Printf("Auth file already exists: %s\n", authFile)
			fmt.Print("Overwrite? (y/N): ")
			response, _ := bufio.NewReader(confirm).ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				return fmt.Errorf("aborted")
			}
		}
		// The file is read-only, so it has to go before rewriting
		if err := os.Remove(authFile); err != nil {
			return fmt.Errorf("failed to remove existing auth file: %w", err)
		}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	content := fmt.Sprintf("%s:%s\n", username, hash)
	if err := os.WriteFile(authFile, []byte(content), 0400); err != nil {
		return fmt.Errorf("failed to write auth file: %w", err)
	}

	fmt.Printf("✅ Auth file created: %s (mode: 0400 read-only)\n", authFile)
	fmt.Printf("   Username: %s\n", username)
	return nil
}
