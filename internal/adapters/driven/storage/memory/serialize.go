package memory

import "encoding/json"

// marshalVector serializes an embedding the same way the durable store does,
// so scan consumers see one wire format.
func marshalVector(vec []float32) []byte {
	data, err := json.Marshal(vec)
	if err != nil {
		// []float32 cannot fail to marshal
		return nil
	}
	return data
}
