// Command basic retries a simulated flaky remote call with the default
// policy, optionally loaded from a YAML file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hedeqiang/rebound"
	"github.com/hedeqiang/rebound/classify"
	"github.com/hedeqiang/rebound/event"
)

func main() {
	policyPath := flag.String("policy", "", "path to a YAML policy file")
	flag.Parse()

	policy := rebound.DefaultPolicy()
	if *policyPath != "" {
		var err error
		policy, err = rebound.LoadPolicy(*policyPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	e := rebound.New(
		rebound.WithSink(event.NewLogSink(nil)),
	)

	// A remote call that throttles twice before responding.
	calls := 0
	value, err := rebound.Execute(context.Background(), e, policy,
		func(ctx context.Context) (string, error) {
			calls++
			if calls < 3 {
				return "", classify.NewFailure("ThrottlingException",
					errors.New("rate exceeded")).
					WithRetryAfter(200 * time.Millisecond)
			}
			return "item-42", nil
		})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("fetched %s after %d call(s)\n", value, calls)
}
