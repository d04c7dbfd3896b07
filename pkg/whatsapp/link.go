// Package whatsapp arma deep-links wa.me para compartir datos de entrega.
package whatsapp

import (
	"net/url"
	"strings"
)

// Link construye una URL wa.me hacia el teléfono dado con el texto precargado.
// El teléfono se limpia de espacios, guiones y el prefijo "+"; si queda vacío
// se genera el link sin destinatario (el usuario elige el chat).
func Link(phone, text string) string {
	digits := sanitizePhone(phone)
	u := &url.URL{Scheme: "https", Host: "wa.me", Path: "/" + digits}
	if text != "" {
		q := url.Values{}
		q.Set("text", text)
		u.RawQuery = q.Encode()
	}
	if digits == "" {
		u.Path = "/"
	}
	return u.String()
}

func sanitizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
