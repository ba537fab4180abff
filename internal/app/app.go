// Package app emulates the API Gateway proxy integration in front of the
// invoice handler so the function can be exercised over plain HTTP.
package app

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gofiber/fiber/v2"

	u "invoice-generator/internal/utils"
)

// Invoker is the function being fronted.
type Invoker interface {
	Process(ctx context.Context, event json.RawMessage) (events.APIGatewayProxyResponse, error)
}

// SetupApp creates and configures a new Fiber app instance
func SetupApp(inv Invoker, log *u.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			msg := "Internal Server Error"

			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			}

			log.Warn("Request failed", "path", c.Path(), "status", code, "message", msg)

			return c.Status(code).JSON(fiber.Map{
				"error": fiber.Map{
					"code":    code,
					"message": msg,
				},
			})
		},
	})

	RegisterMiddleware(app, log)
	RegisterRoutes(app, inv, log)

	// Ensure all responses, including 404s, return JSON
	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not Found")
	})

	return app
}

// RegisterRoutes mounts all route handlers to the app
func RegisterRoutes(app *fiber.App, inv Invoker, log *u.Logger) {
	v1 := app.Group("/v1")

	v1.Get("/invoice", handleInvoke(inv, log))
	v1.Post("/invoice", handleInvoke(inv, log))
}

// handleInvoke turns the HTTP request into a proxy event, calls the function
// and writes its proxy response back out.
func handleInvoke(inv Invoker, log *u.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		event, err := json.Marshal(proxyRequest(c))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cannot encode request event")
		}

		resp, err := inv.Process(c.UserContext(), event)
		if err != nil {
			log.Error("Invocation failed", "request_id", requestID(c), "error", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Invocation failed")
		}
		return writeProxyResponse(c, resp)
	}
}

func proxyRequest(c *fiber.Ctx) events.APIGatewayProxyRequest {
	multi := c.GetReqHeaders()
	headers := make(map[string]string, len(multi))
	for k, v := range multi {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	return events.APIGatewayProxyRequest{
		Resource:              c.Route().Path,
		Path:                  c.Path(),
		HTTPMethod:            c.Method(),
		Headers:               headers,
		MultiValueHeaders:     multi,
		QueryStringParameters: c.Queries(),
		Body:                  string(c.Body()),
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID:  requestID(c),
			HTTPMethod: c.Method(),
			Path:       c.Path(),
			Stage:      "local",
		},
	}
}

// writeProxyResponse mirrors API Gateway binary media handling: base64 bodies
// are decoded before they reach the client.
func writeProxyResponse(c *fiber.Ctx, resp events.APIGatewayProxyResponse) error {
	body := []byte(resp.Body)
	if resp.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(resp.Body)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "Malformed integration response")
		}
		body = decoded
	}

	for k, v := range resp.Headers {
		c.Set(k, v)
	}
	for k, vs := range resp.MultiValueHeaders {
		for _, v := range vs {
			c.Append(k, v)
		}
	}

	status := resp.StatusCode
	if status == 0 {
		status = fiber.StatusOK
	}
	return c.Status(status).Send(body)
}

func requestID(c *fiber.Ctx) string {
	if id := c.Get(fiber.HeaderXRequestID); id != "" {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
