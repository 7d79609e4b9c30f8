// Package planner implements the HTTP client for a Nutriplan backend
// service.
//
// The backend computes nutrition plans from form-encoded POST submissions:
// the client posts the intake form values to "/", and an API-mode backend
// answers with a JSON plan document (calorie targets, macronutrients, meal
// plan, recommended recipes). Individual recipes are fetched from
// "/recipe/{id}".
//
// # Basic Usage
//
//	client := planner.NewClient("http://192.168.1.50:5000")
//
//	request, err := planner.RequestFromValues(values)
//	if err != nil {
//	    return err
//	}
//
//	result, err := client.SubmitPlan(request)
//	if err != nil {
//	    fmt.Println(planner.GetShortErrorMessage(err))
//	    fmt.Println(planner.GetTroubleshootingHint(err))
//	    return err
//	}
//	fmt.Println(result)
//
// # Error Handling
//
// All failures are reported as *ServiceError with a category (network,
// timeout, connection refused, DNS, HTTP, parse, validation) and a
// retryability flag. Transient failures (timeouts, refused connections,
// 5xx responses) are retried automatically with exponential backoff;
// everything else fails fast.
//
// # Response Tolerance
//
// HTML-mode backends embed the plan JSON inside a rendered results page.
// ParsePlanResult extracts the first complete JSON object from the body, so
// the client works against both API-mode and HTML-mode deployments.
//
// # Caching
//
// Recipe details are cached per ID for CacheDuration (default 5 minutes).
// Plan submissions are never cached.
package planner
