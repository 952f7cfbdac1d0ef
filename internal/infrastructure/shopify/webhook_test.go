package shopify_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/b2b-storefront-api/internal/infrastructure/shopify"
)

const webhookSecret = "shpss_secret_de_test"

// sign calcula la firma como lo hace Shopify: HMAC-SHA256 del cuerpo crudo en base64.
func sign(t *testing.T, secret string, body []byte) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func headers(h map[string]string) func(string) string {
	return func(name string) string { return h[name] }
}

func TestHMACVerifier_FirmaValida_DevuelveTienda(t *testing.T) {
	body := []byte(`{"id":900}`)
	v := shopify.NewHMACVerifier(webhookSecret)

	shop, err := v.Verify(body, headers(map[string]string{
		shopify.HeaderHmacSHA256: sign(t, webhookSecret, body),
		shopify.HeaderShopDomain: "mi-tienda.myshopify.com",
	}))

	require.NoError(t, err)
	assert.Equal(t, "mi-tienda.myshopify.com", shop)
}

func TestHMACVerifier_SinFirma_Rechaza(t *testing.T) {
	v := shopify.NewHMACVerifier(webhookSecret)

	_, err := v.Verify([]byte(`{}`), headers(map[string]string{
		shopify.HeaderShopDomain: "mi-tienda.myshopify.com",
	}))

	require.ErrorIs(t, err, shopify.ErrMissingSignature)
}

func TestHMACVerifier_FirmaConOtroSecreto_Rechaza(t *testing.T) {
	body := []byte(`{"id":900}`)
	v := shopify.NewHMACVerifier(webhookSecret)

	_, err := v.Verify(body, headers(map[string]string{
		shopify.HeaderHmacSHA256: sign(t, "otro-secreto", body),
		shopify.HeaderShopDomain: "mi-tienda.myshopify.com",
	}))

	require.ErrorIs(t, err, shopify.ErrInvalidSignature)
}

func TestHMACVerifier_CuerpoAlterado_Rechaza(t *testing.T) {
	v := shopify.NewHMACVerifier(webhookSecret)
	firma := sign(t, webhookSecret, []byte(`{"id":900}`))

	_, err := v.Verify([]byte(`{"id":901}`), headers(map[string]string{
		shopify.HeaderHmacSHA256: firma,
	}))

	require.ErrorIs(t, err, shopify.ErrInvalidSignature)
}

func TestTrustedVerifier_TiendaDelHeader(t *testing.T) {
	v := shopify.NewTrustedVerifier()

	shop, err := v.Verify([]byte(`{}`), headers(map[string]string{
		shopify.HeaderShopDomain: "mi-tienda.myshopify.com",
	}))

	require.NoError(t, err)
	assert.Equal(t, "mi-tienda.myshopify.com", shop)
}

func TestTrustedVerifier_FallbackAlPayload(t *testing.T) {
	v := shopify.NewTrustedVerifier()

	shop, err := v.Verify(
		[]byte(`{"shop_domain":"payload-shop.myshopify.com"}`),
		headers(map[string]string{}),
	)

	require.NoError(t, err)
	assert.Equal(t, "payload-shop.myshopify.com", shop)
}

func TestTrustedVerifier_SinTienda_DevuelveVacio(t *testing.T) {
	v := shopify.NewTrustedVerifier()

	shop, err := v.Verify([]byte(`{}`), headers(map[string]string{}))

	require.NoError(t, err, "la ausencia de tienda la decide el handler (400), no el verificador")
	assert.Empty(t, shop)
}
