package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

/**
 * @brief Represents a single coloured vertex in 2D space.
 * Packed as 5 tightly laid out float32 values.
 */
type ColorVertex2D struct {
	/** @brief The position of the vertex */
	Position Vec2
	/** @brief The colour of the vertex. */
	Colour Vec3
}
