package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
)

// Headers de entrega de webhooks de Shopify.
const (
	HeaderHmacSHA256   = "X-Shopify-Hmac-Sha256"
	HeaderShopDomain   = "X-Shopify-Shop-Domain"
	HeaderWebhookTopic = "X-Shopify-Topic"
)

// Errores de verificación.
var (
	ErrMissingSignature = errors.New("webhook sin firma HMAC")
	ErrInvalidSignature = errors.New("firma HMAC inválida")
)

// WebhookVerifier obtiene el payload verificado y la tienda de una entrega.
// La selección de implementación ocurre una sola vez en el arranque según el
// entorno; la lógica de negocio nunca pregunta en qué modo corre.
type WebhookVerifier interface {
	// Verify valida el cuerpo crudo de la entrega y devuelve el dominio de la
	// tienda. header expone los headers de la petición por nombre.
	Verify(body []byte, header func(string) string) (shop string, err error)
}

// HMACVerifier verificación criptográfica para producción: HMAC-SHA256 del
// cuerpo crudo, en base64, comparado en tiempo constante contra el header
// X-Shopify-Hmac-Sha256.
type HMACVerifier struct {
	secret []byte
}

var _ WebhookVerifier = (*HMACVerifier)(nil)

// NewHMACVerifier construye el verificador con el secreto compartido del webhook.
func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret)}
}

// Verify valida la firma y devuelve la tienda del header de entrega.
func (v *HMACVerifier) Verify(body []byte, header func(string) string) (string, error) {
	got := header(HeaderHmacSHA256)
	if got == "" {
		return "", ErrMissingSignature
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write(body)
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(want), []byte(got)) {
		return "", ErrInvalidSignature
	}
	return header(HeaderShopDomain), nil
}

// TrustedVerifier modo development: confía en el cuerpo y en el header de
// tienda sin verificar firma. Comodidad deliberada para pruebas locales con
// curl; nunca debe seleccionarse fuera de development.
type TrustedVerifier struct{}

var _ WebhookVerifier = (*TrustedVerifier)(nil)

// NewTrustedVerifier construye el verificador de confianza para development.
func NewTrustedVerifier() *TrustedVerifier {
	return &TrustedVerifier{}
}

// Verify devuelve la tienda del header o, en su defecto, del campo
// shop_domain del payload.
func (v *TrustedVerifier) Verify(body []byte, header func(string) string) (string, error) {
	if shop := header(HeaderShopDomain); shop != "" {
		return shop, nil
	}
	var payload struct {
		ShopDomain string `json:"shop_domain"`
	}
	// Cuerpo no-JSON: no hay tienda que extraer, el handler responde 400.
	_ = json.Unmarshal(body, &payload)
	return payload.ShopDomain, nil
}
