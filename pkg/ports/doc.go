/*
Package ports defines the driven ports (interfaces) for the kinetree engine.

These interfaces decouple the realization core from external implementations, allowing
the engine to work with various template sources, trial providers and model stores.

# Key Interfaces

  - TemplateLoader: loads authored templates (e.g., declarative files or an in-memory registry).
  - TrialProvider: supplies the static trial a template is realized against.
  - InertiaProvider: supplies segment inertial parameters by role.
  - ModelStore: persists and loads realized model descriptions.
*/
package ports
