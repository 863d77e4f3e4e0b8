// Package main provides the program training the android/other image classifier.
// It counts the images under the train and validation directories, streams
// augmented batches into a small convolutional network, plots the accuracy and
// loss history and exports the trained network as plushed_model.tflite.
package main
