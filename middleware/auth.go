package middleware

import (
	"log"
	"strings"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/deemkeen/disclosures/util"
)

type contextKey string

const adminKey contextKey = "disclosures-admin"

// AuthMiddleware admits key-authenticated sessions and marks those whose key
// hash is listed in adminKeys.
func AuthMiddleware(conf *util.AppConfig) wish.Middleware {
	return func(h ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			ip := extractIP(s.RemoteAddr().String())

			if s.PublicKey() == nil {
				log.Printf("Rejected session without public key from %s", ip)
				s.Write([]byte("Bu sunucuya yalnızca SSH anahtarı ile bağlanılabilir.\n"))
				s.Close()
				return
			}

			hash := util.PkToHash(util.PublicKeyToString(s.PublicKey()))
			admin := conf.IsAdminKey(hash)
			s.Context().SetValue(adminKey, admin)

			if admin {
				log.Printf("Admin session from %s (key %s)", ip, hash[:16])
			}
			util.LogPublicKey(s)
			h(s)
		}
	}
}

// IsAdmin reports whether AuthMiddleware marked the session as admin.
func IsAdmin(s ssh.Session) bool {
	admin, _ := s.Context().Value(adminKey).(bool)
	return admin
}

// extractIP strips the port from a remote address. Bare IPv6 addresses
// without brackets are returned unchanged.
func extractIP(remoteAddr string) string {
	colonIndex := strings.LastIndex(remoteAddr, ":")
	if colonIndex == -1 {
		return remoteAddr
	}
	if strings.Count(remoteAddr, ":") == 1 || (colonIndex > 0 && remoteAddr[colonIndex-1] == ']') {
		return remoteAddr[:colonIndex]
	}
	return remoteAddr
}
