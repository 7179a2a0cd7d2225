// Package raycast finds where pick rays hit planes, spheres, boxes, triangles
// and triangle meshes.
//
// Everything here is synchronous and free of shared state. A miss is a normal
// result (false), not an error. Preconditions such as unit plane normals or
// invertible mesh transforms are the caller's responsibility and are not
// checked on the hot path.
package raycast
