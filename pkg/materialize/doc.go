// Package materialize reproduces a template tree at a target location.
//
// A Job walks the template root in deterministic pre-order. For every entry
// it rewrites the relative path with the configured markers, joins it under
// the target root and then:
//
//   - directories are created when missing and reused when present;
//   - files are resolved against the exists policy, rendered and written.
//
// The first error stops the run. Nothing already written is rolled back;
// the partial Result is returned together with the error.
//
//	job, err := materialize.NewJob(materialize.Options{
//		TemplateRoot:  "templates/app/default",
//		TargetRoot:    "./demo",
//		Context:       map[string]any{"app_name": "demo"},
//		Substitutions: map[string]string{"__APP_NAME__": "demo"},
//		ExistsPolicy:  "skip",
//	})
//	if err != nil {
//		return err
//	}
//	result, err := job.Run()
package materialize
