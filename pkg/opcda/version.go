package opcda

// Version is the wrapper's own version, independent of the native library
// release it links against.
const Version = "0.3.0"
