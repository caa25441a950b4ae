// Package avaclient provides the primary entry point for constructing an AvaTax
// API client that implements the avatax.Client interface.
//
// It layers host selection, HTTP transport, authentication, debug logging and
// metrics on top of the operation interfaces and models defined in the avatax
// package. Most applications import avaclient to build a client, then use the
// returned avatax.Client to reach the API surfaces: ShippingVerification(),
// AgeVerification(), Utilities() and IAMDS().
//
// Quick start
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
//
//	  cli, err := avaclient.New(ctx, &avatax.Config{
//	    Environment: "sandbox",
//	    Username:    "account-id",
//	    Password:    "license-key",
//	    AppName:     "my-shop",
//	    AppVersion:  "1.4.0",
//	  })
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  result, err := cli.ShippingVerification().VerifyShipment(ctx, &avatax.ShipmentRequest{
//	    CompanyCode:     "DEFAULT",
//	    TransactionCode: "INV-1001",
//	  })
//	  if err != nil { log.Fatal(err) }
//	  log.Println(result.Compliant)
//	}
//
// # Asynchronous calls
//
// Every operation has an Async variant returning an *avatax.Future. The
// request is validated and built before the method returns; an invalid
// argument yields an already completed future and no network activity.
//
//	future := cli.ShippingVerification().VerifyShipmentAsync(ctx, req)
//	future.OnComplete(func(result *avatax.ShippingVerifyResult, err error) { ... })
//
// # Shared tokens
//
// Clients using OAuth2 client credentials cache their token in an
// avatax.TokenStore. NewNATSTokenStore keeps it in a NATS JetStream key-value
// bucket, so that a fleet of processes requests one token instead of one each.
//
// # Helpers
//
// The package also provides convenience constructors NewWithPassword,
// NewWithToken and NewWithClientCredentials that wrap New with the
// appropriate configuration.
package avaclient
