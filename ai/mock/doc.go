// Package mock provides test doubles for the ai interfaces. The doubles are
// deterministic by default and allow behavior injection via function fields,
// so the retrieval and conversation layers can be tested without any
// external AI service.
package mock
