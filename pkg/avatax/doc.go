// Package avatax provides types, interfaces, and helpers for working with the
// AvaTax Shipping Verification and Age Verification APIs and the IAMDS
// identity service.
//
// # Overview
//
// The avatax package defines the request and response models (e.g.,
// ShipmentRequest, ShippingVerifyResult, AgeVerifyRequest, User) and the
// interfaces of the resource clients (e.g., ShippingVerificationClient,
// UsersClient). The concrete implementation lives behind the avaclient
// package, which wires configuration, transport, and authentication.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/avatax-client/pkg/avaclient"
//	  "github.com/fivetwenty-io/avatax-client/pkg/avatax"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := avaclient.New(ctx, &avatax.Config{
//	    Environment: "sandbox",
//	    Username:    "user",
//	    Password:    "secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  result, err := cli.ShippingVerification().VerifyShipment(ctx, &avatax.ShipmentRequest{
//	    CompanyCode:     "DEFAULT",
//	    TransactionCode: "INV-1001",
//	  })
//	  if err != nil { log.Fatal(err) }
//	  _ = result
//	}
//
// # Asynchronous calls
//
// Every operation has an Async variant returning a Future. The call is sent
// immediately; continuations registered with Then, Catch or OnComplete run
// in registration order once the response has been interpreted:
//
//	f := cli.ShippingVerification().VerifyShipmentAsync(ctx, req)
//	compliant := avatax.Then(f, func(r *avatax.ShippingVerifyResult) (bool, error) {
//	  return r.Compliant, nil
//	})
//	ok, err := compliant.Wait(ctx)
//
// # Errors
//
// Missing or empty required parameters fail with an *InvalidArgumentError
// before any request is sent. Every other failure is an *APIError. Responses
// with a documented error shape carry the decoded payload, read with
// ErrorDetail:
//
//	if details, ok := avatax.ErrorDetail[avatax.ErrorDetails](err); ok {
//	  log.Println(details.Error.Message)
//	}
//
// Transport failures are APIErrors with StatusCode 0 and nil Headers and
// Body. Nothing is retried unless Config.RetryMax is set.
package avatax
