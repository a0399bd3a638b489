package report

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const signatureHeader = "Upstash-Signature"

type SignatureVerifier interface {
	Verify(signature string, body []byte, destination string) error
}

type WebhookConfig struct {
	// PublicURL is the externally visible base URL QStash calls, used as the
	// signature subject. Empty skips the subject check.
	PublicURL string
}

// NewWebhookApp serves POST /reports/:kind for scheduled triggers. With a nil
// verifier every request is accepted; with a nil deliverer the digest is only
// returned in the response body.
func NewWebhookApp(reporter *Reporter, verifier SignatureVerifier, deliverer *Deliverer, cfg WebhookConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	publicURL := strings.TrimRight(strings.TrimSpace(cfg.PublicURL), "/")

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	app.Post("/reports/:kind", func(c *fiber.Ctx) error {
		logger := log.With().Str("path", c.Path()).Logger()

		if verifier != nil {
			destination := ""
			if publicURL != "" {
				destination = publicURL + c.Path()
			}
			if err := verifier.Verify(c.Get(signatureHeader), c.Body(), destination); err != nil {
				logger.Warn().Err(err).Msg("rejected report trigger")
				return fiber.NewError(fiber.StatusUnauthorized, "invalid signature")
			}
		}

		kind, err := ParseKind(c.Params("kind"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}

		digest, err := reporter.Generate(kind)
		if err != nil {
			return err
		}

		if deliverer != nil {
			if _, err := deliverer.Deliver(c.UserContext(), kind, digest); err != nil {
				logger.Error().Err(err).Str("kind", string(kind)).Msg("report delivery failed")
				return fiber.NewError(fiber.StatusBadGateway, "report delivery failed")
			}
		}

		logger.Info().Str("kind", string(kind)).Msg("report generated")
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.SendString(digest)
	})

	return app
}
