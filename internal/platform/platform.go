// Package platform concentrates the per-OS-family facts the discovery
// pipeline depends on: the dynamic-module filename suffix, the compiled-in
// default codecs directory, and whether the running process can locate its
// own executable to support relocatable installations.
//
// Keeping these behind one small surface lets a single scanning and
// resolution code path serve both OS families.
package platform

// DescriptorSuffix is the filename suffix that marks a codec descriptor
// file. A codec "jpeg" ships as "jpeg.codec.info" plus a sibling
// "jpeg" + ModuleSuffix dynamic module.
const DescriptorSuffix = ".codec.info"
