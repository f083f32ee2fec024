/*
Package domain contains the core data model of the kinetree engine.

It defines the authored (template) side of a body model: segments linked by parent names,
deferred segment coordinate systems, markers and meshes whose positions are expressed as
spatial references to be evaluated against a static motion-capture trial. This package is kept
pure and free of I/O, following Hexagonal Architecture principles.

# Key Entities

  - Trial: read-only mapping from marker label to a 3D position (one representative pose).
  - SpatialReference: a marker label, the centroid of several labels, or a function of the trial.
  - Axis / SegmentCoordinateSystem: the deferred definition of an anatomical frame.
  - Segment / Template: the mutable, validation-deferred model description.
  - LifecycleHooks: callbacks observing a realization.
*/
package domain
